package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/institute_manager/cache"
	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/middleware"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 72 * time.Hour

func accounts() *services.Accounts {
	return &services.Accounts{
		DB:         database.DB,
		OTPs:       cache.OTPs,
		Mailer:     notifications.Mailer,
		OTPTTL:     config.ConfigDuration("OTP_TTL", 10*time.Minute),
		BcryptCost: config.ConfigInt("BCRYPT_COST", bcrypt.DefaultCost),
		JWTSecret:  []byte(config.Config("JWT_SECRET")),
		TokenTTL:   tokenTTL,
	}
}

func Signup(c *fiber.Ctx) error {
	var req services.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if _, err := accounts().Signup(c.UserContext(), req); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Username or email already registered"})
		}
		return errorJSON(c, err, "Failed to create account")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Signup successful! Please check your email for the verification code.",
	})
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func VerifyOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := accounts().VerifyOTP(c.UserContext(), req.Email, req.OTP); err != nil {
		if errors.Is(err, apperrors.ErrInvalidOTP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid OTP"})
		}
		return errorJSON(c, err, "Failed to verify email")
	}
	return c.JSON(fiber.Map{"message": "Email verified successfully!"})
}

func ResendOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := accounts().ResendOTP(c.UserContext(), req.Email); err != nil {
		return errorJSON(c, err, "Failed to send verification code")
	}
	return c.JSON(fiber.Map{"message": "Verification code sent."})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	inst, token, err := accounts().Login(c.UserContext(), req.Username, req.Password)
	switch {
	case err == nil:
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing credentials"})
	case errors.Is(err, apperrors.ErrNotVerified):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Email not verified"})
	default:
		return errorJSON(c, err, "DB error")
	}

	return c.JSON(fiber.Map{"message": "OK", "institute": inst.Profile(), "token": token})
}

func Me(c *fiber.Ctx) error {
	id, ok := middleware.InstituteID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	var inst models.Institute
	err := database.DB.First(&inst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Institute not found"})
	}
	if err != nil {
		return errorJSON(c, err, "DB error")
	}
	return c.JSON(inst.Profile())
}
