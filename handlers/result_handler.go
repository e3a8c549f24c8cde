package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/reports"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/anjiri1684/institute_manager/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func SubmitTest(c *fiber.Ctx) error {
	var req services.Submission
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid data"})
	}

	result, err := services.SubmitTest(database.DB, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAttempt) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already attempted this test."})
		}
		return errorJSON(c, err, "Failed to submit test")
	}

	if row, err := services.GetResult(database.DB, result.ID); err == nil {
		websocket.Results.Publish(row)
	} else {
		log.Warn().Err(err).Uint("result_id", result.ID).Msg("recorded result not published")
	}

	return c.JSON(fiber.Map{"message": "Test submitted successfully!", "total": result.TotalMarks})
}

// CheckAttempt answers false when either parameter is missing so the
// take-test page can still render.
func CheckAttempt(c *fiber.Ctx) error {
	email := c.Query("email")
	testID, err := parseID("test_id", c.Query("test_id"))
	if err != nil || strings.TrimSpace(email) == "" {
		return c.JSON(fiber.Map{"attempted": false})
	}

	attempted, err := services.HasAttempted(database.DB, testID, email)
	if err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(fiber.Map{"attempted": attempted})
}

func GetResults(c *fiber.Ctx) error {
	rows, err := services.ListResults(database.DB)
	if err != nil {
		log.Error().Err(err).Msg("🔥 Failed to list results")
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(rows)
}

func DeleteResult(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorText(c, err, "Error deleting result")
	}
	if err := services.DeleteResult(database.DB, id); err != nil {
		return errorText(c, err, "Error deleting result")
	}
	return c.SendString("Result deleted successfully!")
}

func SendAllResults(c *fiber.Ctx) error {
	report, err := services.SendAllResults(c.UserContext(), database.DB, notifications.Mailer)
	if err != nil {
		return errorJSON(c, err, "DB Error")
	}
	if report.Total == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No results found."})
	}

	message := "Results sent successfully to all students!"
	if report.Failed > 0 {
		message = fmt.Sprintf("Results sent to %d of %d students.", report.Sent, report.Total)
	}
	return c.JSON(fiber.Map{
		"message":  message,
		"total":    report.Total,
		"sent":     report.Sent,
		"failed":   report.Failed,
		"failures": report.Failures,
	})
}

func ExportResults(c *fiber.Ctx) error {
	rows, err := services.ListResults(database.DB)
	if err != nil {
		return errorJSON(c, err, "Failed to fetch results")
	}

	var buf bytes.Buffer
	if err := reports.WriteResults(&buf, rows); err != nil {
		log.Error().Err(err).Msg("🔥 Failed to build results workbook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export results"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="results.xlsx"`)
	return c.Send(buf.Bytes())
}

func ResultSlip(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return errorJSON(c, err, "")
	}
	row, err := services.GetResult(database.DB, id)
	if err != nil {
		return errorJSON(c, err, "Failed to fetch result")
	}

	html, err := reports.SlipHTML(row)
	if err != nil {
		return errorJSON(c, err, "Failed to render slip")
	}
	pdf, err := reports.RenderPDF(c.UserContext(), html)
	if err != nil {
		return errorJSON(c, err, "Failed to render slip")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="result-%d.pdf"`, row.ID))
	return c.Send(pdf)
}
