package routes

import (
	"github.com/anjiri1684/institute_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func ExamFormRoutes(app *fiber.App) {
	app.Post("/submit-exam-form", handlers.SubmitExamForm)
	app.Get("/exam-forms", handlers.GetExamForms)
	app.Get("/exam-form/:id", handlers.GetExamForm)

	api := app.Group("/api")
	api.Get("/exam-students", handlers.SearchExamStudents)
	api.Get("/exam-student/:id", handlers.GetExamStudent)
	api.Put("/exam-student/:id", handlers.UpdateExamStudent)
	api.Delete("/exam-student/:id", handlers.DeleteExamStudent)
}

// Register wires every route group onto app.
func Register(app *fiber.App) {
	AuthRoutes(app)
	TestRoutes(app)
	ResultRoutes(app)
	StudentRoutes(app)
	TypingRoutes(app)
	CourseRoutes(app)
	ExamFormRoutes(app)
}
