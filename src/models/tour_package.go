package models

import "cycleparadise/src/types"

type TourPackage struct {
	UUIDModel
	Title            string                `gorm:"not null" json:"title"`
	Slug             string                `gorm:"uniqueIndex;not null" json:"slug"`
	Description      string                `gorm:"type:text" json:"description,omitempty"`
	ShortDescription string                `json:"shortDescription,omitempty"`
	Itinerary        types.JSONBArray      `gorm:"type:jsonb" json:"itinerary,omitempty"`
	Duration         int                   `gorm:"not null" json:"duration"`
	DifficultyLevel  types.DifficultyLevel `gorm:"type:varchar(20);not null" json:"difficultyLevel"`
	Region           string                `gorm:"index;not null" json:"region"`
	BasePrice        float64               `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	MaxParticipants  int                   `gorm:"not null" json:"maxParticipants"`
	IncludedServices types.JSONBArray      `gorm:"type:jsonb" json:"includedServices,omitempty"`
	ExcludedServices types.JSONBArray      `gorm:"type:jsonb" json:"excludedServices,omitempty"`
	Highlights       types.StringArray     `gorm:"type:jsonb" json:"highlights,omitempty"`
	WhatToBring      types.StringArray     `gorm:"type:jsonb" json:"whatToBring,omitempty"`
	MediaGallery     types.JSONB           `gorm:"type:jsonb" json:"mediaGallery,omitempty"`
	YoutubeVideoID   string                `json:"youtubeVideoId,omitempty"`
	FAQs             types.JSONBArray      `gorm:"column:faqs;type:jsonb" json:"faqs,omitempty"`
	IsActive         bool                  `gorm:"index" json:"isActive"`
	Featured         bool                  `json:"featured"`
	MetaTitle        string                `json:"metaTitle,omitempty"`
	MetaDescription  string                `json:"metaDescription,omitempty"`

	Bookings []Booking `gorm:"foreignKey:PackageID" json:"-"`

	types.Timestamps
}

// PackageOption is the {id, title} projection used by admin filter dropdowns.
type PackageOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
