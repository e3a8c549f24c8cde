package handlers

import (
	"strings"

	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/gofiber/fiber/v2"
)

type courseRequest struct {
	Name      string          `json:"name" validate:"required"`
	Batch     string          `json:"batch"`
	TotalFees utils.FlexFloat `json:"total_fees" validate:"gte=0,lte=99999999.99"`
}

func AddCourse(c *fiber.Ctx) error {
	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid data")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return errorText(c, err, "")
	}

	course := models.Course{Name: req.Name, Batch: req.Batch, TotalFees: float64(req.TotalFees)}
	if err := database.DB.Create(&course).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("Course added successfully!")
}

func GetCourses(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := database.DB.Order("id ASC").Find(&courses).Error; err != nil {
		return errorJSON(c, err, "Database error")
	}
	return c.JSON(courses)
}

// DeleteCourse also removes the course's students through the foreign key.
func DeleteCourse(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "")
	}
	if err := database.DB.Delete(&models.Course{}, id).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("Course deleted successfully!")
}

type courseStudentForm struct {
	CourseID      string `form:"course_id" validate:"required"`
	Name          string `form:"name" validate:"required"`
	Gender        string `form:"gender"`
	DOB           string `form:"dob"`
	Contact       string `form:"contact"`
	Address       string `form:"address"`
	AdmissionDate string `form:"admission_date"`
	FeesPaid      string `form:"fees_paid"`
	Gmail         string `form:"gmail" validate:"omitempty,email"`
}

func AddCourseStudent(c *fiber.Ctx) error {
	var req courseStudentForm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorText(c, err, "")
	}
	courseID, err := parseID("course_id", req.CourseID)
	if err != nil {
		return errorText(c, err, "")
	}
	photo, err := savePhoto(c, "courses")
	if err != nil {
		return errorText(c, err, "Failed to store photo")
	}

	student := models.CourseStudent{
		CourseID:      courseID,
		Name:          strings.TrimSpace(req.Name),
		Gender:        req.Gender,
		DOB:           utils.ParseDate(req.DOB),
		Contact:       req.Contact,
		Address:       req.Address,
		AdmissionDate: utils.ParseDate(req.AdmissionDate),
		FeesPaid:      utils.ParseFloat(req.FeesPaid),
		Gmail:         strings.TrimSpace(req.Gmail),
		Photo:         photo,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("Student added successfully!")
}

func GetCourseStudents(c *fiber.Ctx) error {
	courseID, err := paramID(c, "course_id")
	if err != nil {
		return c.JSON([]interface{}{})
	}
	students := []models.CourseStudent{}
	if err := database.DB.Where("course_id = ?", courseID).Order("id ASC").Find(&students).Error; err != nil {
		return errorJSON(c, err, "Database error")
	}
	return c.JSON(students)
}

type courseStudentUpdate struct {
	Name     string          `json:"name" validate:"required"`
	Contact  string          `json:"contact"`
	FeesPaid utils.FlexFloat `json:"fees_paid" validate:"gte=0,lte=99999999.99"`
}

func UpdateCourseStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "")
	}
	var req courseStudentUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid data")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return errorText(c, err, "")
	}

	err = database.DB.Model(&models.CourseStudent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":      strings.TrimSpace(req.Name),
		"contact":   req.Contact,
		"fees_paid": float64(req.FeesPaid),
	}).Error
	if err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("Student updated successfully!")
}

func DeleteCourseStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "")
	}
	if err := database.DB.Delete(&models.CourseStudent{}, id).Error; err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("Student deleted successfully!")
}

type courseMessageRequest struct {
	CourseID utils.FlexID `json:"course_id"`
	Message  string       `json:"message"`
	SendType string       `json:"sendType"`
}

func SendCourseMessage(c *fiber.Ctx) error {
	var req courseMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid data")
	}
	report, err := services.SendCourseMessage(c.UserContext(), database.DB, notifications.Mailer, uint(req.CourseID), req.Message, req.SendType)
	if err != nil {
		return errorText(c, err, "Database error")
	}
	if report.Total == 0 {
		return c.SendString("No students found for selected option.")
	}
	if report.Failed > 0 {
		return c.JSON(report)
	}
	return c.SendString("Messages sent successfully!")
}

func SendCourseNotes(c *fiber.Ctx) error {
	courseID, err := parseID("course_id", c.FormValue("course_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Missing data")
	}
	up, err := readUpload(c, "file")
	if err != nil {
		return errorText(c, err, "")
	}
	if up == nil {
		return c.Status(fiber.StatusBadRequest).SendString("Missing data")
	}

	notes := notifications.Attachment{Filename: up.OriginalName, ContentType: up.MimeType, Content: up.Content}
	report, err := services.SendCourseNotes(c.UserContext(), database.DB, notifications.Mailer, courseID, notes)
	if err != nil {
		return errorText(c, err, "Database error")
	}
	if report.Failed > 0 {
		return c.JSON(report)
	}
	return c.SendString("Notes sent successfully to all students!")
}
