package models

import "time"

type Institute struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	InstituteName      string    `gorm:"size:255;not null" json:"institute_name"`
	InstituteType      string    `gorm:"size:100;not null" json:"institute_type"`
	RegistrationNumber string    `gorm:"size:100;not null" json:"registration_number"`
	Address            string    `gorm:"type:text;not null" json:"address"`
	AdminName          string    `gorm:"size:255;not null" json:"admin_name"`
	AdminEmail         string    `gorm:"size:255;not null;uniqueIndex" json:"admin_email"`
	AdminMobile        string    `gorm:"size:20;not null" json:"admin_mobile"`
	Username           string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	IsEmailVerified    bool      `gorm:"default:false" json:"is_email_verified"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// InstituteProfile is what the dashboard keeps client-side after login.
type InstituteProfile struct {
	ID            uint   `json:"id"`
	InstituteName string `json:"institute_name"`
	InstituteType string `json:"institute_type"`
	Address       string `json:"address"`
	AdminEmail    string `json:"admin_email"`
}

func (i Institute) Profile() InstituteProfile {
	return InstituteProfile{
		ID:            i.ID,
		InstituteName: i.InstituteName,
		InstituteType: i.InstituteType,
		Address:       i.Address,
		AdminEmail:    i.AdminEmail,
	}
}
