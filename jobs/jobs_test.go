package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/anjiri1684/institute_manager/cache"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/testutil"
	"github.com/robfig/cron/v3"
)

func TestScheduleRegistersJobs(t *testing.T) {
	c := cron.New()
	if err := Schedule(c); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if got := len(c.Entries()); got != 2 {
		t.Errorf("entries = %d, want 2", got)
	}
}

func TestPurgeExpiredOTPs(t *testing.T) {
	db := testutil.NewDB(t)
	prev := cache.OTPs
	cache.OTPs = cache.NewDBOTPStore(db)
	t.Cleanup(func() { cache.OTPs = prev })

	past := time.Now().Add(-time.Hour)
	if err := db.Create(&models.OTPCode{Email: "old@x.com", Code: "111111", ExpiresAt: past}).Error; err != nil {
		t.Fatal(err)
	}
	if err := cache.OTPs.Put(context.Background(), "new@x.com", "222222", time.Hour); err != nil {
		t.Fatal(err)
	}

	PurgeExpiredOTPs()

	var left []models.OTPCode
	db.Find(&left)
	if len(left) != 1 || left[0].Email != "new@x.com" {
		t.Errorf("remaining codes = %+v", left)
	}
}
