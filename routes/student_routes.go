package routes

import (
	"github.com/anjiri1684/institute_manager/handlers"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	app.Post("/add-student", handlers.AddStudent)
	app.Get("/search-students", handlers.SearchStudents)
	app.Get("/student/:id", handlers.GetStudent)
	app.Put("/student/:id", handlers.UpdateStudent)
	app.Delete("/student/:id", handlers.DeleteStudent)
	app.Get("/pending-fees", handlers.PendingFees)
}

func TypingRoutes(app *fiber.App) {
	app.Post("/addTypingStudent", handlers.AddTypingStudent)
	app.Get("/getTypingStudents", handlers.GetTypingStudents)
	app.Delete("/deleteTypingStudent/:id", handlers.DeleteTypingStudent)
	app.Post("/updateTypingStudent/:id", handlers.UpdateTypingStudent)
	app.Get("/get-typing-student/:id", handlers.GetTypingStudent)
	app.Post("/update-typing-student", handlers.QuickUpdateTypingStudent)
	app.Get("/get-pending-typing-fees", handlers.GetPendingTypingFees)
	app.Post("/send-typing-fee-msg", handlers.SendTypingFeeMessage)
	app.Get("/totalTypingStudents", handlers.TotalTypingStudents)
}

func CourseRoutes(app *fiber.App) {
	app.Post("/addCourse", handlers.AddCourse)
	app.Get("/getCourses", handlers.GetCourses)
	app.Delete("/deleteCourse/:id", handlers.DeleteCourse)
	app.Post("/addCourseStudent", handlers.AddCourseStudent)
	app.Get("/getCourseStudents/:course_id", handlers.GetCourseStudents)
	app.Put("/updateStudent/:id", handlers.UpdateCourseStudent)
	app.Delete("/deleteStudent/:id", handlers.DeleteCourseStudent)
	app.Post("/sendCourseMessage", handlers.SendCourseMessage)
	app.Post("/send-course-notes", handlers.SendCourseNotes)
}
