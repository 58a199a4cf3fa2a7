package repositories

import (
	"context"
	"cycleparadise/src/apperror"
	"cycleparadise/src/models"
	"cycleparadise/src/models/scopes"
	"cycleparadise/src/types"
	"cycleparadise/src/utils"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ExportLimit          = 1000
	DefaultBookingLimit  = 10
	DefaultUpcomingLimit = 5
)

var (
	ErrPackageNotFound = apperror.NewValidationError("Package not found", "packageId", apperror.CodePackageNotFound)
	ErrBookingNotFound = apperror.NewNotFoundError("Booking not found", apperror.CodeBookingNotFound)
)

type CreateBookingInput struct {
	PackageID       uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerCountry *string
	Participants    int
	StartDate       time.Time
	EndDate         time.Time
	SpecialRequests *string
	TotalAmount     float64
	PaymentMethod   types.PaymentMethod
}

type BookingSearchResult struct {
	Bookings []models.Booking   `json:"bookings"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	HasMore  bool               `json:"hasMore"`
	Stats    types.BookingStats `json:"stats"`
}

type BookingRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db, now: time.Now}
}

func (r *BookingRepository) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	db := r.db.WithContext(ctx)

	var found int64
	if err := db.Model(&models.TourPackage{}).Where("id = ?", in.PackageID).Count(&found).Error; err != nil {
		return nil, fail("creating booking", "Failed to create booking", err)
	}
	if found == 0 {
		return nil, ErrPackageNotFound
	}

	now := r.now()
	number, err := utils.GenerateBookingNumber(db, now)
	if err != nil {
		return nil, fail("generating booking number", "Failed to create booking", err)
	}

	method := in.PaymentMethod
	if method == "" {
		method = types.PAYMENT_METHOD_CASH
	}
	booking := models.Booking{
		BookingNumber:   number,
		PackageID:       in.PackageID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		CustomerCountry: in.CustomerCountry,
		Participants:    in.Participants,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		SpecialRequests: in.SpecialRequests,
		TotalAmount:     in.TotalAmount,
		Status:          types.BOOKING_PENDING,
		PaymentStatus:   types.PAYMENT_PENDING,
		PaymentMethod:   method,
		SubmittedAt:     now,
	}
	if err := db.Create(&booking).Error; err != nil {
		return nil, fail("creating booking", "Failed to create booking", err)
	}
	return &booking, nil
}

// FindMany pages through bookings. Stats ignore the status and payment
// filters so the dashboard tabs keep their counts while one tab is selected.
func (r *BookingRepository) FindMany(ctx context.Context, params types.BookingSearchParams) (*BookingSearchResult, error) {
	page, limit := normalizePage(params.Page, params.Limit, DefaultBookingLimit)
	db := r.db.WithContext(ctx)
	search := func() *gorm.DB {
		return db.Model(&models.Booking{}).Scopes(scopes.BookingSearch(params))
	}

	var bookings []models.Booking
	err := search().
		Scopes(scopes.BookingStatusFilter(params)).
		Preload("Package").
		Order("submitted_at desc").
		Scopes(scopes.Paginate(page, limit)).
		Find(&bookings).Error
	if err != nil {
		return nil, fail("finding bookings", "Failed to retrieve bookings", err)
	}

	var total int64
	if err := search().Scopes(scopes.BookingStatusFilter(params)).Count(&total).Error; err != nil {
		return nil, fail("counting bookings", "Failed to retrieve bookings", err)
	}

	var counts []struct {
		Status types.BookingStatus
		Count  int64
	}
	if err := search().Select("status, count(*) as count").Group("status").Scan(&counts).Error; err != nil {
		return nil, fail("computing booking stats", "Failed to retrieve bookings", err)
	}
	var stats types.BookingStats
	for _, c := range counts {
		switch c.Status {
		case types.BOOKING_PENDING:
			stats.Pending = c.Count
		case types.BOOKING_CONFIRMED:
			stats.Confirmed = c.Count
		case types.BOOKING_CANCELLED:
			stats.Cancelled = c.Count
		case types.BOOKING_COMPLETED:
			stats.Completed = c.Count
		}
	}

	return &BookingSearchResult{
		Bookings: bookings,
		Total:    total,
		Page:     page,
		Limit:    limit,
		HasMore:  int64((page-1)*limit+len(bookings)) < total,
		Stats:    stats,
	}, nil
}

func (r *BookingRepository) FindForExport(ctx context.Context, params types.BookingSearchParams) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Scopes(scopes.BookingSearch(params), scopes.BookingStatusFilter(params)).
		Preload("Package").
		Order("submitted_at desc").
		Limit(ExportLimit).
		Find(&bookings).Error
	if err != nil {
		return nil, fail("finding bookings for export", "Failed to retrieve bookings for export", err)
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.NewValidationError("Booking ID is required", "id", "")
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	var booking models.Booking
	err = r.db.WithContext(ctx).
		Preload("Package").
		Preload("Accommodations.Accommodation").
		Preload("StatusHistory", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at desc")
		}).
		Preload("StatusHistory.Admin", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "first_name", "last_name", "email")
		}).
		Where("id = ?", uid).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fail("finding booking by ID", "Failed to retrieve booking", err)
	}
	return &booking, nil
}

func (r *BookingRepository) FindByBookingNumber(ctx context.Context, number string) (*models.Booking, error) {
	if strings.TrimSpace(number) == "" {
		return nil, apperror.NewValidationError("Booking number is required", "bookingNumber", "")
	}
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("booking_number = ?", number).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fail("finding booking by number", "Failed to retrieve booking", err)
	}
	return &booking, nil
}

func (r *BookingRepository) load(db *gorm.DB, id string) (*models.Booking, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	var booking models.Booking
	err = db.Where("id = ?", uid).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	return &booking, err
}

// UpdateStatus records the transition and applies it in one transaction.
// Entering CONFIRMED stamps confirmedAt; leaving it keeps the stamp.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status types.BookingStatus, notes string, adminID uuid.UUID) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, apperror.NewValidationError("Invalid booking status", "status", "")
	}
	db := r.db.WithContext(ctx)
	booking, err := r.load(db, id)
	if err != nil {
		return nil, fail("loading booking", "Failed to update booking status", err)
	}

	previous := booking.Status
	updates := map[string]any{"status": status}
	now := r.now()
	if status == types.BOOKING_CONFIRMED {
		updates["confirmed_at"] = now
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		history := models.BookingStatusHistory{
			BookingID:      booking.ID,
			PreviousStatus: &previous,
			NewStatus:      &status,
			Notes:          utils.StringPtr(notes),
			ChangedBy:      adminID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, fail("updating booking status", "Failed to update booking status", err)
	}

	booking.Status = status
	if status == types.BOOKING_CONFIRMED {
		booking.ConfirmedAt = &now
	}
	return booking, nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id string, status types.PaymentStatus, notes string, adminID uuid.UUID) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, apperror.NewValidationError("Invalid payment status", "paymentStatus", "")
	}
	db := r.db.WithContext(ctx)
	booking, err := r.load(db, id)
	if err != nil {
		return nil, fail("loading booking", "Failed to update payment status", err)
	}

	previous := booking.PaymentStatus
	err = db.Transaction(func(tx *gorm.DB) error {
		history := models.BookingStatusHistory{
			BookingID:       booking.ID,
			PreviousPayment: &previous,
			NewPayment:      &status,
			Notes:           utils.StringPtr(notes),
			ChangedBy:       adminID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("payment_status", status).Error
	})
	if err != nil {
		return nil, fail("updating payment status", "Failed to update payment status", err)
	}

	booking.PaymentStatus = status
	return booking, nil
}

func (r *BookingRepository) FindUpcoming(ctx context.Context, limit int) ([]models.Booking, error) {
	if limit < 1 {
		limit = DefaultUpcomingLimit
	}
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Package").
		Where("start_date >= ?", r.now()).
		Where("status IN ?", []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_CONFIRMED}).
		Order("start_date asc").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, fail("finding upcoming bookings", "Failed to retrieve upcoming bookings", err)
	}
	return bookings, nil
}

// GetPackages lists active packages for the admin filter dropdown.
func (r *BookingRepository) GetPackages(ctx context.Context) ([]models.PackageOption, error) {
	var options []models.PackageOption
	err := r.db.WithContext(ctx).
		Model(&models.TourPackage{}).
		Select("id", "title").
		Scopes(scopes.ActivePackages).
		Order("title asc").
		Scan(&options).Error
	if err != nil {
		return nil, fail("getting packages", "Failed to retrieve packages", err)
	}
	return options, nil
}

// Delete removes the booking along with its history and accommodations.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrBookingNotFound
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", uid).Delete(&models.BookingStatusHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", uid).Delete(&models.BookingAccommodation{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", uid).Delete(&models.Booking{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookingNotFound
		}
		return nil
	})
	if err != nil {
		return fail("deleting booking", "Failed to delete booking", err)
	}
	return nil
}
