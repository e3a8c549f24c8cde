package jobs

import (
	"context"
	"time"

	"github.com/anjiri1684/institute_manager/cache"
	"github.com/rs/zerolog/log"
)

type expiringStore interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// PurgeExpiredOTPs clears dead codes from the otp_codes table. Redis expires
// its own keys, so other stores are skipped.
func PurgeExpiredOTPs() {
	store, ok := cache.OTPs.(expiringStore)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("🔥 Failed to purge expired OTPs")
		return
	}
	if n > 0 {
		log.Info().Int64("purged", n).Msg("Expired OTPs purged")
	}
}
