package routes

import (
	"github.com/anjiri1684/institute_manager/handlers"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ResultRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/submit-test", handlers.SubmitTest)
	api.Get("/check-attempt", handlers.CheckAttempt)
	api.Get("/get-results", handlers.GetResults)
	api.Delete("/delete-result/:id", handlers.DeleteResult)
	api.Post("/send-all-results", handlers.SendAllResults)
	api.Get("/results/export", handlers.ExportResults)
	api.Get("/results/:id/slip", handlers.ResultSlip)

	app.Use("/ws", handlers.UpgradeRequired)
	app.Get("/ws/results", websocket.New(handlers.ServeResultFeed))
}
