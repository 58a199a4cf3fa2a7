package models

import "cycleparadise/src/types"

type CyclingGuide struct {
	UUIDModel
	Title             string            `gorm:"not null" json:"title"`
	Slug              string            `gorm:"uniqueIndex;not null" json:"slug"`
	Region            string            `gorm:"index;not null" json:"region"`
	Content           string            `gorm:"type:text;not null" json:"content"`
	Description       string            `gorm:"type:text" json:"description,omitempty"`
	ShortDescription  string            `json:"shortDescription,omitempty"`
	RouteMap          types.JSONB       `gorm:"type:jsonb" json:"routeMap,omitempty"`
	DifficultyRating  int               `gorm:"not null" json:"difficultyRating"`
	EstimatedDistance *float64          `json:"estimatedDistance,omitempty"`
	EstimatedDuration string            `json:"estimatedDuration,omitempty"`
	StartingPoint     string            `json:"startingPoint,omitempty"`
	EndingPoint       string            `json:"endingPoint,omitempty"`
	TerrainType       string            `json:"terrainType,omitempty"`
	BestSeason        string            `json:"bestSeason,omitempty"`
	Highlights        types.StringArray `gorm:"type:jsonb" json:"highlights,omitempty"`
	SafetyTips        types.JSONBArray  `gorm:"type:jsonb" json:"safetyTips,omitempty"`
	GearChecklist     types.StringArray `gorm:"type:jsonb" json:"gearChecklist,omitempty"`
	MapImageURL       string            `json:"mapImageUrl,omitempty"`
	GpxFileURL        string            `json:"gpxFileUrl,omitempty"`
	IsPublished       bool              `gorm:"index" json:"isPublished"`
	Featured          bool              `json:"featured"`
	MetaTitle         string            `json:"metaTitle,omitempty"`
	MetaDescription   string            `json:"metaDescription,omitempty"`

	types.Timestamps
}
