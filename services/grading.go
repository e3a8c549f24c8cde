package services

import (
	"strconv"
	"strings"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"gorm.io/gorm"
)

// Answers maps a question id (as sent by the take-test page) to the option
// label the student picked.
type Answers map[string]string

// Score sums the marks of every question whose answer matches the key,
// ignoring case. Missing or blank answers score zero.
func Score(questions []models.TestQuestion, answers Answers) float64 {
	var total float64
	for _, q := range questions {
		given := strings.TrimSpace(answers[strconv.FormatUint(uint64(q.ID), 10)])
		if given == "" {
			continue
		}
		if strings.EqualFold(given, strings.TrimSpace(q.CorrectOption)) {
			total += q.Marks
		}
	}
	return total
}

// ScoreTest loads the answer key for testID and scores answers against it.
// A test without questions cannot be graded.
func ScoreTest(db *gorm.DB, testID uint, answers Answers) (float64, error) {
	questions, err := GetQuestions(db, testID)
	if err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 0, apperrors.NotFoundError{Resource: "questions for test", ID: testID}
	}
	return Score(questions, answers), nil
}
