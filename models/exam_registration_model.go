package models

import (
	"time"

	"gorm.io/datatypes"
)

type ExamRegistration struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	FullName       string          `gorm:"size:255;not null;index" json:"full_name"`
	FatherName     *string         `gorm:"size:255" json:"father_name"`
	DOB            *datatypes.Date `gorm:"column:dob" json:"dob"`
	Sex            *string         `gorm:"size:10" json:"sex"`
	AddressLine1   *string         `gorm:"size:255" json:"address_line1"`
	AddressLine2   *string         `gorm:"size:255" json:"address_line2"`
	City           *string         `gorm:"size:100" json:"city"`
	State          *string         `gorm:"size:100" json:"state"`
	Pincode        *string         `gorm:"size:10" json:"pincode"`
	Subject        *string         `gorm:"size:100" json:"subject"`
	AadhaarMasked  *string         `gorm:"size:20" json:"aadhaar_masked"`
	AadhaarHash    *string         `gorm:"size:64" json:"-"`
	Mobile         string          `gorm:"size:20;not null" json:"mobile"`
	TenthPercent   *float64        `gorm:"type:numeric(5,2)" json:"tenth_percent"`
	TwelfthPercent *float64        `gorm:"type:numeric(5,2)" json:"twelfth_percent"`
	CreatedAt      time.Time       `json:"created_at"`

	Attachments []ExamAttachment `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE" json:"-"`
}

type ExamAttachment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RegistrationID uint      `gorm:"not null;index" json:"registration_id"`
	Field          string    `gorm:"size:30;not null" json:"field"`
	Filename       string    `gorm:"size:255;not null" json:"filename"`
	OriginalName   string    `gorm:"size:255" json:"original_name"`
	MimeType       string    `gorm:"size:100" json:"mime_type"`
	SizeBytes      int64     `json:"size_bytes"`
	URL            string    `gorm:"type:text" json:"url"`
	CreatedAt      time.Time `json:"created_at"`
}
