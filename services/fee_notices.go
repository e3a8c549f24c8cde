package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"gorm.io/gorm"
)

const typingFeeSubject = "Pending Fees Reminder - MSCIT Typing Batch"

func PendingTypingStudents(db *gorm.DB) ([]models.TypingStudent, error) {
	students := []models.TypingStudent{}
	if err := db.Where("fees_paid < total_fees").Order("id DESC").Find(&students).Error; err != nil {
		return nil, apperrors.NewStorageError("pending typing fees", err)
	}
	return students, nil
}

// SendTypingFeeReminder mails message to every typing student with fees
// outstanding. Students without an address are skipped, not counted.
func SendTypingFeeReminder(ctx context.Context, db *gorm.DB, d notifications.Dispatcher, message string) (notifications.BatchReport, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return notifications.BatchReport{}, apperrors.NewValidationError("message", "is required")
	}
	students, err := PendingTypingStudents(db)
	if err != nil {
		return notifications.BatchReport{}, err
	}

	msgs := make([]notifications.Message, 0, len(students))
	for _, s := range students {
		if strings.TrimSpace(s.Gmail) == "" {
			continue
		}
		msgs = append(msgs, notifications.Message{To: s.Gmail, ToName: s.Name, Subject: typingFeeSubject, Text: message})
	}
	return notifications.SendBatch(ctx, d, msgs), nil
}

// CourseRecipients lists a course's students with the course fee attached.
// With pendingOnly set, fully paid students are left out.
func CourseRecipients(db *gorm.DB, courseID uint, pendingOnly bool) ([]models.CourseStudentFee, error) {
	rows := []models.CourseStudentFee{}
	q := db.Table("course_students AS s").
		Select("s.name, s.gmail, s.fees_paid, c.total_fees").
		Joins("JOIN courses c ON c.id = s.course_id").
		Where("s.course_id = ?", courseID)
	if pendingOnly {
		q = q.Where("s.fees_paid < c.total_fees")
	}
	if err := q.Order("s.id ASC").Scan(&rows).Error; err != nil {
		return nil, apperrors.NewStorageError("course recipients", err)
	}
	return rows, nil
}

func courseMessages(rows []models.CourseStudentFee, build func(models.CourseStudentFee) notifications.Message) []notifications.Message {
	msgs := make([]notifications.Message, 0, len(rows))
	for _, r := range rows {
		if strings.TrimSpace(r.Gmail) == "" {
			continue
		}
		msgs = append(msgs, build(r))
	}
	return msgs
}

// SendCourseMessage mails message to a course; sendType is "all" or
// "pending".
func SendCourseMessage(ctx context.Context, db *gorm.DB, d notifications.Dispatcher, courseID uint, message, sendType string) (notifications.BatchReport, error) {
	if courseID == 0 {
		return notifications.BatchReport{}, apperrors.NewValidationError("course_id", "is required")
	}
	if strings.TrimSpace(message) == "" {
		return notifications.BatchReport{}, apperrors.NewValidationError("message", "is required")
	}
	if sendType == "" {
		sendType = "all"
	}
	if sendType != "all" && sendType != "pending" {
		return notifications.BatchReport{}, apperrors.NewValidationError("sendType", "must be one of [all pending]")
	}

	rows, err := CourseRecipients(db, courseID, sendType == "pending")
	if err != nil {
		return notifications.BatchReport{}, err
	}
	msgs := courseMessages(rows, func(r models.CourseStudentFee) notifications.Message {
		return notifications.Message{To: r.Gmail, ToName: r.Name, Subject: "Message from Institute", Text: message}
	})
	return notifications.SendBatch(ctx, d, msgs), nil
}

func SendCourseNotes(ctx context.Context, db *gorm.DB, d notifications.Dispatcher, courseID uint, notes notifications.Attachment) (notifications.BatchReport, error) {
	if courseID == 0 || len(notes.Content) == 0 {
		return notifications.BatchReport{}, apperrors.NewValidationError("file", "course_id and file are required")
	}
	rows, err := CourseRecipients(db, courseID, false)
	if err != nil {
		return notifications.BatchReport{}, err
	}
	msgs := courseMessages(rows, func(r models.CourseStudentFee) notifications.Message {
		return notifications.Message{
			To:          r.Gmail,
			ToName:      r.Name,
			Subject:     "Notes for your course",
			Text:        fmt.Sprintf("Hello %s,\nPlease find attached notes for your course.", r.Name),
			Attachments: []notifications.Attachment{notes},
		}
	})
	return notifications.SendBatch(ctx, d, msgs), nil
}
