package repositories

import (
	"context"
	"cycleparadise/src/models"
	"cycleparadise/src/models/scopes"
	"cycleparadise/src/types"
	"cycleparadise/src/utils"
	"time"

	"gorm.io/gorm"
)

const RecentBookingsLimit = 10

type RecentBooking struct {
	ID                string              `json:"id"`
	CustomerFirstName string              `json:"customerFirstName"`
	CustomerLastName  string              `json:"customerLastName"`
	CustomerEmail     string              `json:"customerEmail"`
	PackageName       string              `json:"packageName"`
	TourStartDate     time.Time           `json:"tourStartDate"`
	TotalAmount       float64             `json:"totalAmount"`
	Status            types.BookingStatus `json:"status"`
}

type DashboardStats struct {
	TotalBookings   int64           `json:"totalBookings"`
	PendingBookings int64           `json:"pendingBookings"`
	ActivePackages  int64           `json:"activePackages"`
	TotalRevenue    float64         `json:"totalRevenue"`
	RecentBookings  []RecentBooking `json:"recentBookings"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := DashboardStats{RecentBookings: []RecentBooking{}}

	if err := db.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fail("counting bookings", "Failed to fetch dashboard statistics", err)
	}
	if err := db.Model(&models.Booking{}).Scopes(scopes.WithPendingStatus).Count(&stats.PendingBookings).Error; err != nil {
		return nil, fail("counting pending bookings", "Failed to fetch dashboard statistics", err)
	}
	if err := db.Model(&models.TourPackage{}).Scopes(scopes.ActivePackages).Count(&stats.ActivePackages).Error; err != nil {
		return nil, fail("counting active packages", "Failed to fetch dashboard statistics", err)
	}
	err := db.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ?", types.PAYMENT_PAID).
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, fail("summing revenue", "Failed to fetch dashboard statistics", err)
	}

	var recent []models.Booking
	err = db.Preload("Package", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "title")
	}).
		Order("created_at desc").
		Limit(RecentBookingsLimit).
		Find(&recent).Error
	if err != nil {
		return nil, fail("finding recent bookings", "Failed to fetch dashboard statistics", err)
	}
	for _, b := range recent {
		first, last := utils.SplitName(b.CustomerName)
		if last == "" {
			last = first
		}
		title := ""
		if b.Package != nil {
			title = b.Package.Title
		}
		stats.RecentBookings = append(stats.RecentBookings, RecentBooking{
			ID:                b.ID.String(),
			CustomerFirstName: first,
			CustomerLastName:  last,
			CustomerEmail:     b.CustomerEmail,
			PackageName:       title,
			TourStartDate:     b.StartDate,
			TotalAmount:       b.TotalAmount,
			Status:            b.Status,
		})
	}
	return &stats, nil
}
