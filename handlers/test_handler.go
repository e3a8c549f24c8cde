package handlers

import (
	"io"

	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/reports"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/gofiber/fiber/v2"
)

func SaveTest(c *fiber.Ctx) error {
	var req services.NewTest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid data"})
	}

	id, err := services.CreateTest(database.DB, req)
	if err != nil {
		return errorJSON(c, err, "Failed to save test")
	}
	return c.JSON(fiber.Map{"message": "Test saved successfully!", "test_id": id})
}

// ImportTest builds a test from an uploaded question sheet.
func ImportTest(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}

	questions, err := reports.ParseQuestions(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := services.CreateTest(database.DB, services.NewTest{
		TestName:   c.FormValue("test_name"),
		CourseName: c.FormValue("course_name"),
		Questions:  questions,
	})
	if err != nil {
		return errorJSON(c, err, "Failed to save test")
	}
	return c.JSON(fiber.Map{"message": "Test saved successfully!", "test_id": id, "questions": len(questions)})
}

func GetTests(c *fiber.Ctx) error {
	tests, err := services.ListTests(database.DB)
	if err != nil {
		return errorJSON(c, err, "Failed to fetch tests")
	}
	return c.JSON(tests)
}

func GetTestQuestions(c *fiber.Ctx) error {
	id, err := paramID(c, "test_id")
	if err != nil {
		return c.JSON([]interface{}{})
	}
	questions, err := services.GetQuestions(database.DB, id)
	if err != nil {
		return errorJSON(c, err, "Failed to fetch questions")
	}
	return c.JSON(questions)
}

func DeleteTest(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "Error deleting test")
	}
	if err := services.DeleteTest(database.DB, id); err != nil {
		return errorText(c, err, "Error deleting test")
	}
	return c.SendString("Test deleted successfully!")
}

