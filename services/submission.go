package services

import (
	"strings"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Submission struct {
	TestID  utils.FlexID `json:"test_id" validate:"required"`
	Name    string       `json:"name" validate:"required"`
	Course  string       `json:"course" validate:"required"`
	Email   string       `json:"email" validate:"required,email"`
	Answers Answers      `json:"answers" validate:"required"`
}

// SubmitTest runs one attempt: reject if already attempted, grade, record.
// Nothing is persisted before the final insert, so a crash mid-way leaves
// the student free to retry.
func SubmitTest(db *gorm.DB, s Submission) (models.StudentResult, error) {
	s.Email = NormalizeEmail(s.Email)
	s.Name = strings.TrimSpace(s.Name)
	s.Course = strings.TrimSpace(s.Course)
	if err := utils.ValidateStruct(s); err != nil {
		return models.StudentResult{}, err
	}
	testID := uint(s.TestID)

	attempted, err := HasAttempted(db, testID, s.Email)
	if err != nil {
		return models.StudentResult{}, err
	}
	if attempted {
		return models.StudentResult{}, apperrors.ErrDuplicateAttempt
	}

	total, err := ScoreTest(db, testID, s.Answers)
	if err != nil {
		return models.StudentResult{}, err
	}

	result, err := RecordResult(db, NewResult{
		TestID:     testID,
		Name:       s.Name,
		Course:     s.Course,
		Email:      s.Email,
		TotalMarks: total,
	})
	if err != nil {
		return models.StudentResult{}, err
	}

	log.Info().Uint("test_id", testID).Str("email", s.Email).Float64("total", total).Msg("✅ Test submission graded")
	return result, nil
}
