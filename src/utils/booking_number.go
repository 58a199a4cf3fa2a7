package utils

import (
	"cycleparadise/src/models"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const BOOKING_NUMBER_PREFIX = "CP"

// BookingNumberPrefix returns "CP-YYYYMMDD-" for the UTC date of t.
func BookingNumberPrefix(t time.Time) string {
	return fmt.Sprintf("%s-%s-", BOOKING_NUMBER_PREFIX, t.UTC().Format("20060102"))
}

// FormatBookingNumber pads seq to four digits. Larger sequences widen the number.
func FormatBookingNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("%s%04d", BookingNumberPrefix(t), seq)
}

// GenerateBookingNumber counts today's bookings and returns the next number.
// Two concurrent callers can observe the same count; the unique index on
// booking_number rejects the second insert.
func GenerateBookingNumber(tx *gorm.DB, now time.Time) (string, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("booking_number LIKE ?", BookingNumberPrefix(now)+"%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return FormatBookingNumber(now, count+1), nil
}
