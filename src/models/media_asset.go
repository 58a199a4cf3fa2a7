package models

import (
	"cycleparadise/src/types"

	"github.com/google/uuid"
)

type MediaAsset struct {
	UUIDModel
	Filename   string     `gorm:"not null" json:"filename"`
	StorageKey string     `gorm:"uniqueIndex;not null" json:"storageKey"`
	MimeType   string     `json:"mimeType"`
	FileSize   int64      `json:"fileSize"`
	AltText    string     `json:"altText,omitempty"`
	Caption    string     `json:"caption,omitempty"`
	URL        string     `json:"url"`
	UploadedBy *uuid.UUID `gorm:"type:uuid" json:"uploadedBy,omitempty"`
	IsPublic   bool       `json:"isPublic"`

	types.Timestamps
}
