package routes

import (
	"github.com/anjiri1684/institute_manager/handlers"
	"github.com/anjiri1684/institute_manager/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	app.Post("/signup", handlers.Signup)
	app.Post("/verify-otp", handlers.VerifyOTP)
	app.Post("/resend-otp", handlers.ResendOTP)
	app.Post("/login", handlers.Login)

	app.Get("/api/institute/me", middleware.Protected(), handlers.Me)
}
