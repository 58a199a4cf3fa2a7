package scopes

import (
	"cycleparadise/src/types"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Contains builds an ILIKE pattern matching value anywhere, with the
// wildcard characters in value taken literally.
func Contains(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func WithPendingStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", types.BOOKING_PENDING)
}

// BookingSearch applies the query, package and date-range filters.
func BookingSearch(p types.BookingSearchParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Query != "" {
			like := Contains(p.Query)
			db = db.Where("booking_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?", like, like, like)
		}
		if p.PackageID != "" {
			db = db.Where("package_id = ?", p.PackageID)
		}
		if p.StartDate != nil {
			db = db.Where("start_date >= ?", *p.StartDate)
		}
		if p.EndDate != nil {
			db = db.Where("end_date <= ?", *p.EndDate)
		}
		return db
	}
}

// BookingStatusFilter applies the exact status and payment status filters.
func BookingStatusFilter(p types.BookingSearchParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Status != "" {
			db = db.Where("status = ?", p.Status)
		}
		if p.PaymentStatus != "" {
			db = db.Where("payment_status = ?", p.PaymentStatus)
		}
		return db
	}
}

func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

func ActivePackages(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

func PublishedGuides(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}

func PackageSearch(p types.PackageSearchParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Query != "" {
			like := Contains(p.Query)
			db = db.Where("title ILIKE ? OR description ILIKE ? OR short_description ILIKE ? OR region ILIKE ?", like, like, like, like)
		}
		if p.Region != "" {
			db = db.Where("region ILIKE ?", Contains(p.Region))
		}
		if p.Difficulty != "" {
			db = db.Where("difficulty_level = ?", p.Difficulty)
		}
		if p.MinPrice != nil {
			db = db.Where("base_price >= ?", *p.MinPrice)
		}
		if p.MaxPrice != nil {
			db = db.Where("base_price <= ?", *p.MaxPrice)
		}
		if p.MinDuration != nil {
			db = db.Where("duration >= ?", *p.MinDuration)
		}
		if p.MaxDuration != nil {
			db = db.Where("duration <= ?", *p.MaxDuration)
		}
		if p.Featured != nil {
			db = db.Where("featured = ?", *p.Featured)
		}
		return db
	}
}

func GuideSearch(p types.GuideSearchParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Query != "" {
			like := Contains(p.Query)
			db = db.Where("title ILIKE ? OR description ILIKE ? OR region ILIKE ?", like, like, like)
		}
		if p.Region != "" {
			db = db.Where("region ILIKE ?", Contains(p.Region))
		}
		if p.MaxDifficulty > 0 {
			db = db.Where("difficulty_rating <= ?", p.MaxDifficulty)
		}
		if p.Featured != nil {
			db = db.Where("featured = ?", *p.Featured)
		}
		return db
	}
}
