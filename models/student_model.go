package models

import (
	"time"

	"gorm.io/datatypes"
)

type Student struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InstituteID   uint            `gorm:"not null;index" json:"institute_id"`
	StudentName   string          `gorm:"size:255;not null" json:"student_name"`
	Gender        string          `gorm:"size:20" json:"gender"`
	DOB           *datatypes.Date `gorm:"column:dob" json:"dob"`
	ContactNumber string          `gorm:"size:20" json:"contact_number"`
	Address       string          `gorm:"type:text" json:"address"`
	AdmissionDate *datatypes.Date `json:"admission_date"`
	TotalFees     float64         `gorm:"type:numeric(10,2);default:0" json:"total_fees"`
	FeesPaid      float64         `gorm:"type:numeric(10,2);default:0" json:"fees_paid"`
	Photo         *string         `gorm:"size:255" json:"photo"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Institute Institute `gorm:"foreignKey:InstituteID;constraint:OnDelete:CASCADE" json:"-"`
}

type TypingStudent struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Gender        string          `gorm:"size:20" json:"gender"`
	DOB           *datatypes.Date `gorm:"column:dob" json:"dob"`
	Contact       string          `gorm:"size:20" json:"contact"`
	Address       string          `gorm:"type:text" json:"address"`
	AdmissionDate *datatypes.Date `json:"admission_date"`
	TotalFees     float64         `gorm:"type:numeric(10,2);default:0" json:"total_fees"`
	FeesPaid      float64         `gorm:"type:numeric(10,2);default:0" json:"fees_paid"`
	Gmail         string          `gorm:"size:255" json:"gmail"`
	Batch         string          `gorm:"size:100" json:"batch"`
	Photo         *string         `gorm:"size:255" json:"photo"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
