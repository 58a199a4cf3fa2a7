package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type JSONB map[string]any
type JSONBArray []any
type StringArray []string

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &a)
}

func (a JSONBArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &a)
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringArray) Scan(value any) error {
	b, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, &a)
}

func scanBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return []byte("null"), nil
	}
	return nil, errors.New("type assertion to []byte failed")
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "PENDING"
	BOOKING_CONFIRMED BookingStatus = "CONFIRMED"
	BOOKING_CANCELLED BookingStatus = "CANCELLED"
	BOOKING_COMPLETED BookingStatus = "COMPLETED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BOOKING_PENDING, BOOKING_CONFIRMED, BOOKING_CANCELLED, BOOKING_COMPLETED:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PAYMENT_PENDING  PaymentStatus = "PENDING"
	PAYMENT_PAID     PaymentStatus = "PAID"
	PAYMENT_PARTIAL  PaymentStatus = "PARTIAL"
	PAYMENT_REFUNDED PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PAYMENT_PENDING, PAYMENT_PAID, PAYMENT_PARTIAL, PAYMENT_REFUNDED:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PAYMENT_METHOD_CASH          PaymentMethod = "CASH"
	PAYMENT_METHOD_BANK_TRANSFER PaymentMethod = "BANK_TRANSFER"
	PAYMENT_METHOD_CARD          PaymentMethod = "CARD"
	PAYMENT_METHOD_OTHER         PaymentMethod = "OTHER"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PAYMENT_METHOD_CASH, PAYMENT_METHOD_BANK_TRANSFER, PAYMENT_METHOD_CARD, PAYMENT_METHOD_OTHER:
		return true
	}
	return false
}

type DifficultyLevel string

const (
	DIFFICULTY_BEGINNER     DifficultyLevel = "BEGINNER"
	DIFFICULTY_INTERMEDIATE DifficultyLevel = "INTERMEDIATE"
	DIFFICULTY_ADVANCED     DifficultyLevel = "ADVANCED"
	DIFFICULTY_EXPERT       DifficultyLevel = "EXPERT"
)

type AccommodationType string

const (
	ACCOMMODATION_HOTEL      AccommodationType = "HOTEL"
	ACCOMMODATION_GUESTHOUSE AccommodationType = "GUESTHOUSE"
	ACCOMMODATION_RESORT     AccommodationType = "RESORT"
	ACCOMMODATION_HOMESTAY   AccommodationType = "HOMESTAY"
	ACCOMMODATION_CAMPING    AccommodationType = "CAMPING"
)

type AdminRole string

const (
	ROLE_ADMIN  AdminRole = "ADMIN"
	ROLE_EDITOR AdminRole = "EDITOR"
)

// BookingSearchParams enumerates every filter the booking list and export accept.
// Zero values mean "no filter".
type BookingSearchParams struct {
	Query         string
	Status        BookingStatus
	PaymentStatus PaymentStatus
	PackageID     string
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	Limit         int
}

type BookingStats struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

type PackageSearchParams struct {
	Query       string
	Region      string
	Difficulty  DifficultyLevel
	MinPrice    *float64
	MaxPrice    *float64
	MinDuration *int
	MaxDuration *int
	Featured    *bool
	Page        int
	Limit       int
}

type GuideSearchParams struct {
	Query         string
	Region        string
	MaxDifficulty int
	Featured      *bool
}

type SimpleRequestParams struct {
	ID string `uri:"id" json:"id" binding:"required,uuid"`
}

type MediaQueryFilters struct {
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SlugRequestParams struct {
	Slug string `uri:"slug" json:"slug" binding:"required"`
}

type CreateBookingRequestBody struct {
	PackageSlug       string  `json:"packageSlug" binding:"required"`
	CustomerFirstName string  `json:"customerFirstName" binding:"required"`
	CustomerLastName  string  `json:"customerLastName" binding:"required"`
	CustomerEmail     string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone     string  `json:"customerPhone" binding:"required"`
	CustomerCountry   string  `json:"customerCountry,omitempty"`
	NumberOfGuests    int     `json:"numberOfGuests" binding:"required,min=1"`
	StartDate         string  `json:"startDate" binding:"required,isodate"`
	EndDate           string  `json:"endDate" binding:"required,isodate,afterdate=StartDate"`
	SpecialRequests   string  `json:"specialRequests,omitempty"`
	TotalPrice        float64 `json:"totalPrice" binding:"required,gt=0"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	Notes  string        `json:"notes,omitempty"`
}

type UpdatePaymentStatusRequestBody struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" binding:"required,oneof=PENDING PAID PARTIAL REFUNDED"`
	Notes         string        `json:"notes,omitempty"`
}

type SendBookingEmailRequestBody struct {
	Template string `json:"template" binding:"required,oneof=confirmation cancellation custom"`
	Subject  string `json:"subject,omitempty"`
	Message  string `json:"message,omitempty"`
}

// BookingQueryFilters is the query-string shape of BookingSearchParams.
type BookingQueryFilters struct {
	Query         string `form:"q"`
	Status        string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	PaymentStatus string `form:"paymentStatus" binding:"omitempty,oneof=PENDING PAID PARTIAL REFUNDED"`
	PackageID     string `form:"packageId" binding:"omitempty,uuid"`
	StartDate     string `form:"startDate" binding:"omitempty,isodate"`
	EndDate       string `form:"endDate" binding:"omitempty,isodate"`
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PackageQueryFilters struct {
	Query       string   `form:"q"`
	Region      string   `form:"region"`
	Difficulty  string   `form:"difficulty" binding:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	MinPrice    *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice    *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	MinDuration *int     `form:"minDuration" binding:"omitempty,min=1"`
	MaxDuration *int     `form:"maxDuration" binding:"omitempty,min=1"`
	Featured    *bool    `form:"featured"`
	Page        int      `form:"page" binding:"omitempty,min=1"`
	Limit       int      `form:"limit" binding:"omitempty,min=1,max=100"`
}

type GuideQueryFilters struct {
	Query         string `form:"q"`
	Region        string `form:"region"`
	MaxDifficulty int    `form:"maxDifficulty" binding:"omitempty,min=1,max=10"`
	Featured      *bool  `form:"featured"`
}

type UpsertPackageRequestBody struct {
	Title            string          `json:"title" binding:"required"`
	Slug             string          `json:"slug,omitempty"`
	Description      string          `json:"description,omitempty"`
	ShortDescription string          `json:"shortDescription,omitempty"`
	Itinerary        JSONBArray      `json:"itinerary,omitempty"`
	Duration         int             `json:"duration" binding:"required,min=1"`
	DifficultyLevel  DifficultyLevel `json:"difficultyLevel" binding:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	Region           string          `json:"region" binding:"required"`
	BasePrice        float64         `json:"basePrice" binding:"required,gt=0"`
	MaxParticipants  int             `json:"maxParticipants" binding:"required,min=1"`
	IncludedServices JSONBArray      `json:"includedServices,omitempty"`
	ExcludedServices JSONBArray      `json:"excludedServices,omitempty"`
	Highlights       StringArray     `json:"highlights,omitempty"`
	WhatToBring      StringArray     `json:"whatToBring,omitempty"`
	MediaGallery     JSONB           `json:"mediaGallery,omitempty"`
	YoutubeVideoID   string          `json:"youtubeVideoId,omitempty"`
	FAQs             JSONBArray      `json:"faqs,omitempty"`
	IsActive         *bool           `json:"isActive,omitempty"`
	Featured         bool            `json:"featured,omitempty"`
	MetaTitle        string          `json:"metaTitle,omitempty"`
	MetaDescription  string          `json:"metaDescription,omitempty"`
}

type UpsertGuideRequestBody struct {
	Title             string      `json:"title" binding:"required"`
	Slug              string      `json:"slug,omitempty"`
	Region            string      `json:"region" binding:"required"`
	Content           string      `json:"content" binding:"required"`
	Description       string      `json:"description,omitempty"`
	ShortDescription  string      `json:"shortDescription,omitempty"`
	DifficultyRating  int         `json:"difficultyRating" binding:"required,min=1,max=10"`
	EstimatedDistance *float64    `json:"estimatedDistance,omitempty"`
	EstimatedDuration string      `json:"estimatedDuration,omitempty"`
	StartingPoint     string      `json:"startingPoint,omitempty"`
	EndingPoint       string      `json:"endingPoint,omitempty"`
	TerrainType       string      `json:"terrainType,omitempty"`
	BestSeason        string      `json:"bestSeason,omitempty"`
	Highlights        StringArray `json:"highlights,omitempty"`
	SafetyTips        JSONBArray  `json:"safetyTips,omitempty"`
	GearChecklist     StringArray `json:"gearChecklist,omitempty"`
	RouteMap          JSONB       `json:"routeMap,omitempty"`
	MapImageURL       string      `json:"mapImageUrl,omitempty"`
	GpxFileURL        string      `json:"gpxFileUrl,omitempty"`
	IsPublished       *bool       `json:"isPublished,omitempty"`
	Featured          bool        `json:"featured,omitempty"`
	MetaTitle         string      `json:"metaTitle,omitempty"`
	MetaDescription   string      `json:"metaDescription,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Remember bool   `json:"remember" form:"remember"`
}

type CreateAdminUserRequestBody struct {
	Email     string    `json:"email" binding:"required,email"`
	FirstName string    `json:"firstName" binding:"required"`
	LastName  string    `json:"lastName" binding:"required"`
	Password  string    `json:"password" binding:"required,min=8"`
	Role      AdminRole `json:"role,omitempty" binding:"omitempty,oneof=ADMIN EDITOR"`
	IsActive  *bool     `json:"isActive,omitempty"`
}

type UpdateAdminUserRequestBody struct {
	Email     *string    `json:"email,omitempty" binding:"omitempty,email"`
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
	Password  *string    `json:"password,omitempty" binding:"omitempty,min=8"`
	Role      *AdminRole `json:"role,omitempty" binding:"omitempty,oneof=ADMIN EDITOR"`
	IsActive  *bool      `json:"isActive,omitempty"`
}
