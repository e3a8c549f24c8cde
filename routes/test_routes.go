package routes

import (
	"github.com/anjiri1684/institute_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func TestRoutes(app *fiber.App) {
	app.Post("/save-test", handlers.SaveTest)
	app.Post("/import-test", handlers.ImportTest)
	app.Get("/get-tests", handlers.GetTests)
	app.Get("/get-test-questions/:test_id", handlers.GetTestQuestions)

	api := app.Group("/api")
	api.Get("/get-tests", handlers.GetTests)
	api.Delete("/delete-test/:id", handlers.DeleteTest)
}
