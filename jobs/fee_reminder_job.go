package jobs

import (
	"context"
	"time"

	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/database"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/services"
	"github.com/rs/zerolog/log"
)

func SendTypingFeeReminders() {
	message := config.Config("FEE_REMINDER_MESSAGE")
	if message == "" {
		return
	}
	log.Info().Msg("Running job: SendTypingFeeReminders...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := services.SendTypingFeeReminder(ctx, database.DB, notifications.Mailer, message)
	if err != nil {
		log.Error().Err(err).Msg("🔥 Typing fee reminder job failed")
		return
	}
	log.Info().Int("total", report.Total).Int("sent", report.Sent).Int("failed", report.Failed).Msg("✅ Typing fee reminders processed")
}
