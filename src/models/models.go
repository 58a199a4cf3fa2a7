package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDModel gives a table a client-generated UUID primary key.
type UUIDModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
}

func (m *UUIDModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&AdminUser{},
		&Session{},
		&TourPackage{},
		&CyclingGuide{},
		&Accommodation{},
		&Booking{},
		&BookingAccommodation{},
		&BookingStatusHistory{},
		&MediaAsset{},
	}
}
