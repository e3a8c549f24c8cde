// Package cache holds short-lived signup verification codes.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrMissing is returned when no live code exists for a key.
var ErrMissing = errors.New("otp not found or expired")

type OTPStore interface {
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
}

// OTPs is the process-wide store chosen by Init.
var OTPs OTPStore

// Init uses Redis when redisAddr is set and falls back to the otp_codes
// table otherwise.
func Init(db *gorm.DB, redisAddr, redisPassword string, redisDB int) error {
	if redisAddr == "" {
		OTPs = NewDBOTPStore(db)
		log.Info().Msg("✅ OTP store: database")
		return nil
	}
	client, err := NewRedisClient(redisAddr, redisPassword, redisDB)
	if err != nil {
		return err
	}
	OTPs = NewRedisOTPStore(client)
	log.Info().Str("addr", redisAddr).Msg("✅ OTP store: redis")
	return nil
}
