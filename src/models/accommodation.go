package models

import "cycleparadise/src/types"

type Accommodation struct {
	UUIDModel
	Name          string                  `gorm:"not null" json:"name"`
	Slug          string                  `gorm:"uniqueIndex;not null" json:"slug"`
	Type          types.AccommodationType `gorm:"type:varchar(20);not null" json:"type"`
	Location      string                  `gorm:"not null" json:"location"`
	Description   string                  `gorm:"type:text" json:"description,omitempty"`
	Amenities     types.JSONBArray        `gorm:"type:jsonb" json:"amenities,omitempty"`
	PricePerNight float64                 `gorm:"type:decimal(10,2)" json:"pricePerNight"`
	MaxOccupancy  int                     `json:"maxOccupancy"`
	Images        types.JSONB             `gorm:"type:jsonb" json:"images,omitempty"`
	ContactInfo   types.JSONB             `gorm:"type:jsonb" json:"contactInfo,omitempty"`
	Rating        *float64                `json:"rating,omitempty"`
	IsActive      bool                    `json:"isActive"`

	types.Timestamps
}
