package models

import "time"

type OTPCode struct {
	Email     string    `gorm:"primaryKey;size:255"`
	Code      string    `gorm:"size:12;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
