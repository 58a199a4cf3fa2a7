package utils

import (
	"cycleparadise/src/models"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var BookingExportHeaders = []string{
	"Booking Number",
	"Customer Name",
	"Customer Email",
	"Customer Phone",
	"Customer Country",
	"Package Title",
	"Start Date",
	"End Date",
	"Duration (days)",
	"Participants",
	"Total Amount (USD)",
	"Booking Status",
	"Payment Status",
	"Payment Method",
	"Submitted Date",
	"Confirmed Date",
	"Special Requests",
}

const (
	csvDateFormat     = "1/2/2006"
	csvDateTimeFormat = "1/2/2006, 3:04:05 PM"
)

// EscapeCSV quotes a value containing a comma, quote or newline and doubles
// any embedded quotes.
func EscapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BookingCSVRow renders one export line in header order.
func BookingCSVRow(b *models.Booking) string {
	duration := int(math.Ceil(b.EndDate.Sub(b.StartDate).Hours() / 24))
	packageTitle := ""
	if b.Package != nil {
		packageTitle = b.Package.Title
	}
	confirmed := ""
	if b.ConfirmedAt != nil {
		confirmed = b.ConfirmedAt.UTC().Format(csvDateTimeFormat)
	}
	fields := []string{
		b.BookingNumber,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		derefString(b.CustomerCountry),
		packageTitle,
		b.StartDate.UTC().Format(csvDateFormat),
		b.EndDate.UTC().Format(csvDateFormat),
		strconv.Itoa(duration),
		strconv.Itoa(b.Participants),
		FormatAmount(b.TotalAmount),
		string(b.Status),
		string(b.PaymentStatus),
		string(b.PaymentMethod),
		b.SubmittedAt.UTC().Format(csvDateTimeFormat),
		confirmed,
		derefString(b.SpecialRequests),
	}
	for i, f := range fields {
		fields[i] = EscapeCSV(f)
	}
	return strings.Join(fields, ",")
}

func BookingsToCSV(bookings []models.Booking) string {
	lines := make([]string, 0, len(bookings)+1)
	lines = append(lines, strings.Join(BookingExportHeaders, ","))
	for i := range bookings {
		lines = append(lines, BookingCSVRow(&bookings[i]))
	}
	return strings.Join(lines, "\n")
}

func ExportFilename(date string) string {
	return fmt.Sprintf("bookings-export-%s.csv", date)
}
