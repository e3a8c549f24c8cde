package handlers

import (
	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/anjiri1684/institute_manager/storage"
	"github.com/gofiber/fiber/v2"
)

func examRegistrations() *services.ExamRegistrations {
	return &services.ExamRegistrations{
		DB:         database.DB,
		Store:      storage.Files,
		AadhaarKey: config.Config("AADHAAR_HMAC_KEY"),
	}
}

func SubmitExamForm(c *fiber.Ctx) error {
	var form services.ExamForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	var files []services.UploadedFile
	for _, field := range services.ExamFileFields {
		up, err := readUpload(c, field)
		if err != nil {
			return errorText(c, err, "")
		}
		if up != nil {
			files = append(files, *up)
		}
	}

	if _, err := examRegistrations().Submit(c.UserContext(), form, files); err != nil {
		return errorText(c, err, "Database error")
	}
	return c.SendString("✅ Form submitted successfully!")
}

func GetExamForms(c *fiber.Ctx) error {
	regs, err := examRegistrations().List(c.UserContext())
	if err != nil {
		return errorText(c, err, "DB error")
	}
	return c.JSON(regs)
}

func GetExamForm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Not found")
	}
	reg, atts, err := examRegistrations().Get(c.UserContext(), id)
	if err != nil {
		return errorText(c, err, "DB error")
	}
	return c.JSON(fiber.Map{"registration": reg, "attachments": atts})
}

func SearchExamStudents(c *fiber.Ctx) error {
	rows, err := examRegistrations().Search(c.UserContext(), c.Query("search"))
	if err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(rows)
}

func GetExamStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	}
	reg, atts, err := examRegistrations().Get(c.UserContext(), id)
	if err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(fiber.Map{"registration": reg, "attachments": services.GroupAttachments(atts)})
}

func UpdateExamStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, err, "")
	}
	var req services.ExamUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := examRegistrations().Update(c.UserContext(), id, req); err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(fiber.Map{"success": true})
}

func DeleteExamStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, err, "")
	}
	if err := examRegistrations().Delete(c.UserContext(), id); err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(fiber.Map{"success": true})
}
