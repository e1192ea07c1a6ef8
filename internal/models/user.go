package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account. Password holds the bcrypt hash and never leaves the service layer.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"index;size:50;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:320;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	RefreshToken *string   `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Identity is the minimal projection the auth gate attaches to a request.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Role is not part of the account schema and stays empty.
	Role string `json:"role,omitempty"`
}

func (u User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
