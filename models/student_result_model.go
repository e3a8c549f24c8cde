package models

import "time"

// StudentResult is unique per (test_id, email); the index is what rejects a
// second concurrent submission.
type StudentResult struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TestID      uint      `gorm:"not null;uniqueIndex:idx_result_test_email" json:"test_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Course      string    `gorm:"size:255;not null" json:"course"`
	Email       string    `gorm:"size:255;not null;uniqueIndex:idx_result_test_email" json:"email"`
	TotalMarks  float64   `gorm:"type:numeric(8,2);not null" json:"total_marks"`
	SubmittedAt time.Time `gorm:"autoCreateTime;index" json:"submitted_at"`

	Test Test `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"-"`
}

type ResultRow struct {
	ID          uint      `json:"id"`
	TestID      uint      `json:"test_id"`
	Name        string    `json:"name"`
	Course      string    `json:"course"`
	Email       string    `json:"email"`
	TotalMarks  float64   `json:"total_marks"`
	SubmittedAt time.Time `json:"submitted_at"`
	TestName    string    `json:"test_name"`
}
