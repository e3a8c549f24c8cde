package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type NewResult struct {
	TestID     uint    `json:"test_id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Course     string  `json:"course" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	TotalMarks float64 `json:"total_marks" validate:"gte=0"`
}

// NormalizeEmail is applied on every read and write of a result so the
// (test, email) key is compared consistently.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HasAttempted(db *gorm.DB, testID uint, email string) (bool, error) {
	var count int64
	err := db.Model(&models.StudentResult{}).
		Where("test_id = ? AND email = ?", testID, NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewStorageError("check attempt", err)
	}
	return count > 0, nil
}

// RecordResult inserts a result. The unique index on (test_id, email) is the
// authority on duplicates, so two racing inserts cannot both succeed.
func RecordResult(db *gorm.DB, in NewResult) (models.StudentResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Course = strings.TrimSpace(in.Course)
	in.Email = NormalizeEmail(in.Email)
	if err := utils.ValidateStruct(in); err != nil {
		return models.StudentResult{}, err
	}

	result := models.StudentResult{
		TestID:     in.TestID,
		Name:       in.Name,
		Course:     in.Course,
		Email:      in.Email,
		TotalMarks: in.TotalMarks,
	}
	if err := db.Create(&result).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.StudentResult{}, apperrors.ErrDuplicateAttempt
		}
		return models.StudentResult{}, apperrors.NewStorageError("record result", err)
	}
	return result, nil
}

func resultRows(db *gorm.DB) *gorm.DB {
	return db.Table("student_results AS r").
		Select("r.id, r.test_id, r.name, r.course, r.email, r.total_marks, r.submitted_at, t.test_name").
		Joins("JOIN tests t ON r.test_id = t.id")
}

func ListResults(db *gorm.DB) ([]models.ResultRow, error) {
	rows := []models.ResultRow{}
	if err := resultRows(db).Order("r.submitted_at DESC").Order("r.id DESC").Scan(&rows).Error; err != nil {
		return nil, apperrors.NewStorageError("list results", err)
	}
	return rows, nil
}

func GetResult(db *gorm.DB, id uint) (models.ResultRow, error) {
	var rows []models.ResultRow
	if err := resultRows(db).Where("r.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return models.ResultRow{}, apperrors.NewStorageError("get result", err)
	}
	if len(rows) == 0 {
		return models.ResultRow{}, apperrors.NotFoundError{Resource: "result", ID: id}
	}
	return rows[0], nil
}

// DeleteResult only fails on storage errors; removing an absent id succeeds.
func DeleteResult(db *gorm.DB, id uint) error {
	if err := db.Delete(&models.StudentResult{}, id).Error; err != nil {
		return apperrors.NewStorageError("delete result", err)
	}
	return nil
}

// SendAllResults mails every result stored at call time. Each send is
// independent; failures are collected in the report, not returned.
func SendAllResults(ctx context.Context, db *gorm.DB, d notifications.Dispatcher) (notifications.BatchReport, error) {
	rows, err := ListResults(db)
	if err != nil {
		return notifications.BatchReport{}, err
	}

	msgs := make([]notifications.Message, 0, len(rows))
	var renderFailures []notifications.Failure
	for _, r := range rows {
		msg, err := notifications.ResultMessage(r)
		if err != nil {
			log.Error().Err(err).Uint("result_id", r.ID).Msg("failed to render result email")
			renderFailures = append(renderFailures, notifications.Failure{Recipient: r.Email, Error: err.Error()})
			continue
		}
		msgs = append(msgs, msg)
	}

	report := notifications.SendBatch(ctx, d, msgs)
	report.Total += len(renderFailures)
	report.Failed += len(renderFailures)
	report.Failures = append(report.Failures, renderFailures...)

	log.Info().Int("total", report.Total).Int("sent", report.Sent).Int("failed", report.Failed).Msg("✅ Result notifications processed")
	return report, nil
}
