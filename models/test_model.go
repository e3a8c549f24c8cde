package models

import "time"

type Test struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TestName   string    `gorm:"size:255;not null" json:"test_name"`
	CourseName string    `gorm:"size:255;not null" json:"course_name"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Questions []TestQuestion `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type TestQuestion struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TestID        uint    `gorm:"not null;index:idx_question_test_position" json:"test_id"`
	Position      int     `gorm:"not null;index:idx_question_test_position" json:"position"`
	QuestionText  string  `gorm:"type:text;not null" json:"question_text"`
	Marks         float64 `gorm:"type:numeric(6,2);not null" json:"marks"`
	OptionA       string  `gorm:"type:text;not null" json:"option_a"`
	OptionB       string  `gorm:"type:text;not null" json:"option_b"`
	OptionC       string  `gorm:"type:text;not null" json:"option_c"`
	OptionD       string  `gorm:"type:text;not null" json:"option_d"`
	CorrectOption string  `gorm:"size:1;not null" json:"correct_option"`
}
