package handlers

import (
	"errors"
	"strings"

	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type studentForm struct {
	StudentName   string `form:"student_name" validate:"required"`
	Gender        string `form:"gender"`
	DOB           string `form:"dob"`
	ContactNumber string `form:"contact_number"`
	Address       string `form:"address"`
	AdmissionDate string `form:"admission_date"`
	TotalFees     string `form:"total_fees"`
	FeesPaid      string `form:"fees_paid"`
	InstituteID   string `form:"institute_id" validate:"required,numeric"`
}

func AddStudent(c *fiber.Ctx) error {
	var req studentForm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse form"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorJSON(c, err, "")
	}
	instID, err := parseID("institute_id", req.InstituteID)
	if err != nil {
		return errorJSON(c, err, "")
	}

	photo, err := savePhoto(c, "students")
	if err != nil {
		return errorJSON(c, err, "Failed to store photo")
	}

	student := models.Student{
		InstituteID:   instID,
		StudentName:   strings.TrimSpace(req.StudentName),
		Gender:        req.Gender,
		DOB:           utils.ParseDate(req.DOB),
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		AdmissionDate: utils.ParseDate(req.AdmissionDate),
		TotalFees:     utils.ParseFloat(req.TotalFees),
		FeesPaid:      utils.ParseFloat(req.FeesPaid),
		Photo:         photo,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return errorJSON(c, err, "Database error")
	}
	return c.JSON(fiber.Map{"message": "Student added successfully", "id": student.ID})
}

type studentHit struct {
	ID          uint   `json:"id"`
	StudentName string `json:"student_name"`
}

func SearchStudents(c *fiber.Ctx) error {
	instID, err := parseID("inst", c.Query("inst"))
	if err != nil {
		return errorJSON(c, err, "")
	}
	hits := []studentHit{}
	err = database.DB.Model(&models.Student{}).
		Select("id, student_name").
		Where("institute_id = ? AND student_name LIKE ?", instID, "%"+c.Query("name")+"%").
		Order("student_name ASC").
		Limit(10).
		Scan(&hits).Error
	if err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(hits)
}

func GetStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	var student models.Student
	if err := database.DB.First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(student)
}

type studentUpdate struct {
	StudentName   string          `json:"student_name" validate:"required"`
	ContactNumber string          `json:"contact_number"`
	Address       string          `json:"address"`
	FeesPaid      utils.FlexFloat `json:"fees_paid" validate:"gte=0"`
}

func UpdateStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, err, "")
	}
	var req studentUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorJSON(c, err, "")
	}

	res := database.DB.Model(&models.Student{}).Where("id = ?", id).Updates(map[string]interface{}{
		"student_name":   strings.TrimSpace(req.StudentName),
		"contact_number": req.ContactNumber,
		"address":        req.Address,
		"fees_paid":      float64(req.FeesPaid),
	})
	if res.Error != nil {
		return errorJSON(c, res.Error, "Update failed")
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	return c.JSON(fiber.Map{"message": "Student updated successfully"})
}

func DeleteStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, err, "")
	}
	if err := database.DB.Delete(&models.Student{}, id).Error; err != nil {
		return errorJSON(c, err, "Delete failed")
	}
	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

type pendingFee struct {
	StudentName string  `json:"student_name"`
	TotalFees   float64 `json:"total_fees"`
	FeesPaid    float64 `json:"fees_paid"`
}

func PendingFees(c *fiber.Ctx) error {
	instID, err := parseID("inst", c.Query("inst"))
	if err != nil {
		return errorJSON(c, err, "")
	}
	rows := []pendingFee{}
	err = database.DB.Model(&models.Student{}).
		Select("student_name, total_fees, fees_paid").
		Where("institute_id = ? AND fees_paid < total_fees", instID).
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return errorJSON(c, err, "Database error")
	}
	return c.JSON(rows)
}
