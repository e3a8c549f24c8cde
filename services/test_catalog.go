package services

import (
	"strings"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/utils"
	"gorm.io/gorm"
)

type QuestionInput struct {
	QuestionText  string          `json:"question_text" validate:"required"`
	Marks         utils.FlexFloat `json:"marks" validate:"gt=0,lte=9999.99"`
	OptionA       string          `json:"option_a" validate:"required"`
	OptionB       string          `json:"option_b" validate:"required"`
	OptionC       string          `json:"option_c" validate:"required"`
	OptionD       string          `json:"option_d" validate:"required"`
	CorrectOption string          `json:"correct_option" validate:"required,oneof=A B C D a b c d"`
}

type NewTest struct {
	TestName   string          `json:"test_name" validate:"required"`
	CourseName string          `json:"course_name" validate:"required"`
	Questions  []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

func (in *NewTest) normalize() {
	in.TestName = strings.TrimSpace(in.TestName)
	in.CourseName = strings.TrimSpace(in.CourseName)
	for i := range in.Questions {
		q := &in.Questions[i]
		q.QuestionText = strings.TrimSpace(q.QuestionText)
		q.CorrectOption = strings.ToUpper(strings.TrimSpace(q.CorrectOption))
	}
}

// CreateTest writes the test row and all of its questions in one
// transaction; a failure on any question leaves no test behind.
func CreateTest(db *gorm.DB, in NewTest) (uint, error) {
	in.normalize()
	if err := utils.ValidateStruct(in); err != nil {
		return 0, err
	}

	test := models.Test{TestName: in.TestName, CourseName: in.CourseName}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&test).Error; err != nil {
			return err
		}

		questions := make([]models.TestQuestion, len(in.Questions))
		for i, q := range in.Questions {
			questions[i] = models.TestQuestion{
				TestID:        test.ID,
				Position:      i + 1,
				QuestionText:  q.QuestionText,
				Marks:         float64(q.Marks),
				OptionA:       q.OptionA,
				OptionB:       q.OptionB,
				OptionC:       q.OptionC,
				OptionD:       q.OptionD,
				CorrectOption: q.CorrectOption,
			}
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return 0, apperrors.NewStorageError("create test", err)
	}
	return test.ID, nil
}

func ListTests(db *gorm.DB) ([]models.Test, error) {
	tests := []models.Test{}
	if err := db.Order("created_at DESC").Order("id DESC").Find(&tests).Error; err != nil {
		return nil, apperrors.NewStorageError("list tests", err)
	}
	return tests, nil
}

// GetQuestions returns questions in authoring order. An unknown test yields
// an empty slice.
func GetQuestions(db *gorm.DB, testID uint) ([]models.TestQuestion, error) {
	questions := []models.TestQuestion{}
	err := db.Where("test_id = ?", testID).
		Order("position ASC").Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, apperrors.NewStorageError("get questions", err)
	}
	return questions, nil
}

// DeleteTest removes a test with its questions and results. Deleting an
// unknown id is not an error.
func DeleteTest(db *gorm.DB, testID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).Delete(&models.StudentResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", testID).Delete(&models.TestQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Test{}, testID).Error
	})
	if err != nil {
		return apperrors.NewStorageError("delete test", err)
	}
	return nil
}
