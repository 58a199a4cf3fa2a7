package models

import (
	"cycleparadise/src/types"
	"time"

	"github.com/google/uuid"
)

type AdminUser struct {
	UUIDModel
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"not null" json:"-"`
	FirstName    string          `gorm:"not null" json:"firstName"`
	LastName     string          `gorm:"not null" json:"lastName"`
	Role         types.AdminRole `gorm:"type:varchar(20);default:'EDITOR'" json:"role"`
	IsActive     bool            `json:"isActive"`
	LastLoginAt  *time.Time      `json:"lastLoginAt,omitempty"`

	types.Timestamps
}

func (u *AdminUser) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Session backs the admin_session cookie. The cookie only carries the ID.
type Session struct {
	UUIDModel
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
	UserAgent string    `json:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`

	User *AdminUser `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	types.Timestamps
}
