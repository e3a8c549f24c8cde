package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anjiri1684/institute_manager/cache"
	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupRequest struct {
	InstituteName      string `json:"institute_name" validate:"required"`
	InstituteType      string `json:"institute_type" validate:"required"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Address            string `json:"address" validate:"required"`
	AdminName          string `json:"admin_name" validate:"required"`
	AdminEmail         string `json:"admin_email" validate:"required,email"`
	AdminMobile        string `json:"admin_mobile" validate:"required"`
	Username           string `json:"username" validate:"required"`
	Password           string `json:"password" validate:"required,min=6"`
}

type Accounts struct {
	DB         *gorm.DB
	OTPs       cache.OTPStore
	Mailer     notifications.Dispatcher
	OTPTTL     time.Duration
	BcryptCost int
	JWTSecret  []byte
	TokenTTL   time.Duration
}

func (a *Accounts) Signup(ctx context.Context, req SignupRequest) (models.Institute, error) {
	req.AdminEmail = NormalizeEmail(req.AdminEmail)
	req.Username = strings.TrimSpace(req.Username)
	if err := utils.ValidateStruct(req); err != nil {
		return models.Institute{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.BcryptCost)
	if err != nil {
		return models.Institute{}, err
	}

	inst := models.Institute{
		InstituteName:      req.InstituteName,
		InstituteType:      req.InstituteType,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		AdminName:          req.AdminName,
		AdminEmail:         req.AdminEmail,
		AdminMobile:        req.AdminMobile,
		Username:           req.Username,
		PasswordHash:       string(hash),
	}
	if err := a.DB.WithContext(ctx).Create(&inst).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.Institute{}, apperrors.ErrAlreadyExists
		}
		return models.Institute{}, apperrors.NewStorageError("create institute", err)
	}

	if err := a.issueOTP(ctx, inst); err != nil {
		log.Warn().Err(err).Str("email", inst.AdminEmail).Msg("signup saved but OTP could not be delivered")
	}
	return inst, nil
}

// ResendOTP replaces any pending code for an unverified institute.
func (a *Accounts) ResendOTP(ctx context.Context, email string) error {
	var inst models.Institute
	err := a.DB.WithContext(ctx).Where("admin_email = ?", NormalizeEmail(email)).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFoundError{Resource: "institute", ID: email}
	}
	if err != nil {
		return apperrors.NewStorageError("find institute", err)
	}
	if inst.IsEmailVerified {
		return nil
	}
	return a.issueOTP(ctx, inst)
}

func (a *Accounts) issueOTP(ctx context.Context, inst models.Institute) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	if err := a.OTPs.Put(ctx, inst.AdminEmail, code, a.OTPTTL); err != nil {
		return apperrors.NewStorageError("store otp", err)
	}
	msg, err := notifications.OTPMessage(inst.AdminEmail, inst.AdminName, code, a.OTPTTL)
	if err != nil {
		return err
	}
	if err := a.Mailer.Send(ctx, msg); err != nil {
		return apperrors.NotificationError{Recipient: inst.AdminEmail, Err: err}
	}
	return nil
}

func (a *Accounts) VerifyOTP(ctx context.Context, email, otp string) error {
	email = NormalizeEmail(email)
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return apperrors.NewValidationError("otp", "email and otp are required")
	}

	code, err := a.OTPs.Get(ctx, email)
	if errors.Is(err, cache.ErrMissing) {
		return apperrors.ErrInvalidOTP
	}
	if err != nil {
		return apperrors.NewStorageError("read otp", err)
	}
	if code != otp {
		return apperrors.ErrInvalidOTP
	}

	err = a.DB.WithContext(ctx).Model(&models.Institute{}).
		Where("admin_email = ?", email).
		Update("is_email_verified", true).Error
	if err != nil {
		return apperrors.NewStorageError("verify institute", err)
	}
	if err := a.OTPs.Delete(ctx, email); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("failed to clear used OTP")
	}
	return nil
}

func (a *Accounts) Login(ctx context.Context, username, password string) (models.Institute, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Institute{}, "", apperrors.NewValidationError("username", "missing credentials")
	}

	var inst models.Institute
	err := a.DB.WithContext(ctx).Where("username = ?", username).First(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Institute{}, "", apperrors.ErrBadCredentials
	}
	if err != nil {
		return models.Institute{}, "", apperrors.NewStorageError("find institute", err)
	}
	if !inst.IsEmailVerified {
		return models.Institute{}, "", apperrors.ErrNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(inst.PasswordHash), []byte(password)); err != nil {
		return models.Institute{}, "", apperrors.ErrBadCredentials
	}

	token, err := a.issueToken(inst)
	if err != nil {
		return models.Institute{}, "", err
	}
	return inst, token, nil
}

func (a *Accounts) issueToken(inst models.Institute) (string, error) {
	claims := jwt.MapClaims{
		"institute_id": inst.ID,
		"username":     inst.Username,
		"exp":          time.Now().Add(a.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.JWTSecret)
}
