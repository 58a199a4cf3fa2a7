package models

import (
	"cycleparadise/src/types"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	UUIDModel
	BookingNumber   string              `gorm:"uniqueIndex;not null" json:"bookingNumber"`
	PackageID       uuid.UUID           `gorm:"type:uuid;index;not null" json:"packageId"`
	CustomerName    string              `gorm:"not null" json:"customerName"`
	CustomerEmail   string              `gorm:"index;not null" json:"customerEmail"`
	CustomerPhone   string              `gorm:"not null" json:"customerPhone"`
	CustomerCountry *string             `json:"customerCountry,omitempty"`
	Participants    int                 `gorm:"column:number_of_participants;not null" json:"numberOfParticipants"`
	StartDate       time.Time           `gorm:"index;not null" json:"startDate"`
	EndDate         time.Time           `gorm:"not null" json:"endDate"`
	SpecialRequests *string             `gorm:"type:text" json:"specialRequests,omitempty"`
	TotalAmount     float64             `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status          types.BookingStatus `gorm:"type:varchar(20);index;default:'PENDING'" json:"status"`
	PaymentStatus   types.PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"paymentStatus"`
	PaymentMethod   types.PaymentMethod `gorm:"type:varchar(20);default:'CASH'" json:"paymentMethod"`
	SubmittedAt     time.Time           `gorm:"index;not null" json:"submittedAt"`
	ConfirmedAt     *time.Time          `json:"confirmedAt,omitempty"`

	Package        *TourPackage           `gorm:"foreignKey:PackageID;constraint:OnDelete:RESTRICT" json:"package,omitempty"`
	Accommodations []BookingAccommodation `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"bookingAccommodations,omitempty"`
	StatusHistory  []BookingStatusHistory `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"statusHistory,omitempty"`

	types.Timestamps
}

// BookingStatusHistory is append-only. A row carries either the status pair
// or the payment pair.
type BookingStatusHistory struct {
	UUIDModel
	BookingID       uuid.UUID            `gorm:"type:uuid;index;not null" json:"bookingId"`
	PreviousStatus  *types.BookingStatus `gorm:"type:varchar(20)" json:"previousStatus,omitempty"`
	NewStatus       *types.BookingStatus `gorm:"type:varchar(20)" json:"newStatus,omitempty"`
	PreviousPayment *types.PaymentStatus `gorm:"type:varchar(20)" json:"previousPayment,omitempty"`
	NewPayment      *types.PaymentStatus `gorm:"type:varchar(20)" json:"newPayment,omitempty"`
	Notes           *string              `gorm:"type:text" json:"notes,omitempty"`
	ChangedBy       uuid.UUID            `gorm:"type:uuid;not null" json:"changedBy"`
	CreatedAt       time.Time            `gorm:"autoCreateTime" json:"createdAt"`

	Admin *AdminUser `gorm:"foreignKey:ChangedBy" json:"admin,omitempty"`
}

type BookingAccommodation struct {
	UUIDModel
	BookingID       uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	AccommodationID uuid.UUID `gorm:"type:uuid;index;not null" json:"accommodationId"`
	CheckInDate     time.Time `json:"checkInDate"`
	CheckOutDate    time.Time `json:"checkOutDate"`
	Rooms           int       `gorm:"default:1" json:"rooms"`

	Accommodation *Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation,omitempty"`

	types.Timestamps
}
