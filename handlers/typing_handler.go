package handlers

import (
	"errors"
	"strings"

	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// The typing-batch endpoints answer in plain text, as the batch pages expect.

type typingForm struct {
	Name          string `form:"name" validate:"required"`
	Gender        string `form:"gender"`
	DOB           string `form:"dob"`
	Contact       string `form:"contact"`
	Address       string `form:"address"`
	AdmissionDate string `form:"admission_date"`
	TotalFees     string `form:"total_fees"`
	FeesPaid      string `form:"fees_paid"`
	Gmail         string `form:"gmail" validate:"omitempty,email"`
	Batch         string `form:"batch"`
	OldPhoto      string `form:"oldPhoto"`
}

func (f typingForm) apply(s *models.TypingStudent) {
	s.Name = strings.TrimSpace(f.Name)
	s.Gender = f.Gender
	s.DOB = utils.ParseDate(f.DOB)
	s.Contact = f.Contact
	s.Address = f.Address
	s.AdmissionDate = utils.ParseDate(f.AdmissionDate)
	s.TotalFees = utils.ParseFloat(f.TotalFees)
	s.FeesPaid = utils.ParseFloat(f.FeesPaid)
	s.Gmail = strings.TrimSpace(f.Gmail)
	s.Batch = f.Batch
}

func AddTypingStudent(c *fiber.Ctx) error {
	var req typingForm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorText(c, err, "")
	}
	photo, err := savePhoto(c, "typing")
	if err != nil {
		return errorText(c, err, "Failed to store photo")
	}

	var student models.TypingStudent
	req.apply(&student)
	student.Photo = photo
	if err := database.DB.Create(&student).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("Typing student added successfully!")
}

func GetTypingStudents(c *fiber.Ctx) error {
	students := []models.TypingStudent{}
	if err := database.DB.Order("id DESC").Find(&students).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.JSON(students)
}

func GetTypingStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	}
	var student models.TypingStudent
	if err := database.DB.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Not found")
		}
		return errorText(c, err, "Database error")
	}
	return c.JSON(student)
}

func DeleteTypingStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "")
	}
	if err := database.DB.Delete(&models.TypingStudent{}, id).Error; err != nil {
		return errorText(c, err, "Error deleting record")
	}
	return c.SendString("Student deleted successfully")
}

// UpdateTypingStudent replaces every column; the photo is kept unless a new
// one is uploaded.
func UpdateTypingStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "")
	}
	var req typingForm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorText(c, err, "")
	}

	var student models.TypingStudent
	if err := database.DB.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Not found")
		}
		return errorText(c, err, "Update failed")
	}

	photo, err := savePhoto(c, "typing")
	if err != nil {
		return errorText(c, err, "Failed to store photo")
	}
	req.apply(&student)
	if photo != nil {
		student.Photo = photo
	} else if old := utils.NullableString(req.OldPhoto); old != nil {
		student.Photo = old
	}
	if err := database.DB.Save(&student).Error; err != nil {
		return errorText(c, err, "Update failed")
	}
	return c.SendString("Student updated successfully")
}

type typingQuickUpdate struct {
	ID       string `form:"id" validate:"required"`
	Name     string `form:"name" validate:"required"`
	Contact  string `form:"contact"`
	Gmail    string `form:"gmail"`
	Batch    string `form:"batch"`
	FeesPaid string `form:"fees_paid"`
}

func QuickUpdateTypingStudent(c *fiber.Ctx) error {
	var req typingQuickUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorText(c, err, "")
	}
	id, err := parseID("id", req.ID)
	if err != nil {
		return errorText(c, err, "")
	}

	err = database.DB.Model(&models.TypingStudent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      strings.TrimSpace(req.Name),
		"contact":   req.Contact,
		"gmail":     strings.TrimSpace(req.Gmail),
		"batch":     req.Batch,
		"fees_paid": utils.ParseFloat(req.FeesPaid),
	}).Error
	if err != nil {
		return errorText(c, err, "Error updating student")
	}
	return c.SendString("Student updated successfully!")
}

func GetPendingTypingFees(c *fiber.Ctx) error {
	students, err := services.PendingTypingStudents(database.DB)
	if err != nil {
		return errorText(c, err, "Database error")
	}
	return c.JSON(students)
}

type feeMessageRequest struct {
	Message string `json:"message"`
}

func SendTypingFeeMessage(c *fiber.Ctx) error {
	var req feeMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request")
	}
	report, err := services.SendTypingFeeReminder(c.UserContext(), database.DB, notifications.Mailer, req.Message)
	if err != nil {
		return errorText(c, err, "Database error")
	}
	if report.Total == 0 {
		return c.SendString("No pending students.")
	}
	if report.Failed > 0 {
		return c.JSON(report)
	}
	return c.SendString("Message sent successfully to all pending students!")
}

func TotalTypingStudents(c *fiber.Ctx) error {
	var total int64
	if err := database.DB.Model(&models.TypingStudent{}).Count(&total).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.JSON(fiber.Map{"total": total})
}
