package jobs

import "github.com/robfig/cron/v3"

func Schedule(c *cron.Cron) error {
	if _, err := c.AddFunc("*/15 * * * *", PurgeExpiredOTPs); err != nil {
		return err
	}
	if _, err := c.AddFunc("0 9 * * MON", SendTypingFeeReminders); err != nil {
		return err
	}
	return nil
}
