package utils

import (
	"regexp"
	"testing"
	"time"

	"cycleparadise/src/db/dbtest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingNumberPattern = regexp.MustCompile(`^CP-\d{8}-\d{4,}$`)

func TestFormatBookingNumber(t *testing.T) {
	day := time.Date(2025, 11, 28, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "CP-20251128-0001", FormatBookingNumber(day, 1))
	assert.Equal(t, "CP-20251128-0042", FormatBookingNumber(day, 42))
	assert.Equal(t, "CP-20251128-9999", FormatBookingNumber(day, 9999))
	assert.Equal(t, "CP-20251128-10000", FormatBookingNumber(day, 10000))
	assert.Regexp(t, bookingNumberPattern, FormatBookingNumber(day, 7))
}

func TestBookingNumberUsesUTCDate(t *testing.T) {
	manila := time.FixedZone("Asia/Manila", 8*60*60)
	// 01:00 on the 1st in Manila is still the 31st in UTC.
	local := time.Date(2026, 1, 1, 1, 0, 0, 0, manila)

	assert.Equal(t, "CP-20251231-", BookingNumberPrefix(local))
}

func TestGenerateBookingNumber(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE booking_number LIKE \$1`).
		WithArgs("CP-20250601-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	number, err := GenerateBookingNumber(gormDB, now)
	require.NoError(t, err)
	assert.Equal(t, "CP-20250601-0004", number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateBookingNumberFirstOfDay(t *testing.T) {
	gormDB, mock := dbtest.NewMockDB(t)
	now := time.Date(2025, 6, 2, 0, 0, 1, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs("CP-20250602-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	number, err := GenerateBookingNumber(gormDB, now)
	require.NoError(t, err)
	assert.Equal(t, "CP-20250602-0001", number)
}
