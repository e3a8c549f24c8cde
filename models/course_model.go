package models

import (
	"time"

	"gorm.io/datatypes"
)

type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Batch     string    `gorm:"size:100" json:"batch"`
	TotalFees float64   `gorm:"type:numeric(10,2);default:0" json:"total_fees"`
	CreatedAt time.Time `json:"created_at"`
}

type CourseStudent struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CourseID      uint            `gorm:"not null;index" json:"course_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Gender        string          `gorm:"size:20" json:"gender"`
	DOB           *datatypes.Date `gorm:"column:dob" json:"dob"`
	Contact       string          `gorm:"size:20" json:"contact"`
	Address       string          `gorm:"type:text" json:"address"`
	AdmissionDate *datatypes.Date `json:"admission_date"`
	FeesPaid      float64         `gorm:"type:numeric(10,2);default:0" json:"fees_paid"`
	Gmail         string          `gorm:"size:255" json:"gmail"`
	Photo         *string         `gorm:"size:255" json:"photo"`
	CreatedAt     time.Time       `json:"created_at"`

	Course Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// CourseStudentFee is the join of a course student with the course fee.
type CourseStudentFee struct {
	Name      string  `json:"name"`
	Gmail     string  `json:"gmail"`
	FeesPaid  float64 `json:"fees_paid"`
	TotalFees float64 `json:"total_fees"`
}
