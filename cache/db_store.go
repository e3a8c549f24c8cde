package cache

import (
	"context"
	"errors"
	"time"

	"github.com/anjiri1684/institute_manager/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBOTPStore keeps codes in otp_codes with an explicit expiry; expired rows
// are ignored on read and removed by PurgeExpired.
type DBOTPStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBOTPStore(db *gorm.DB) *DBOTPStore {
	return &DBOTPStore{db: db, now: time.Now}
}

func (s *DBOTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	row := models.OTPCode{Email: email, Code: code, ExpiresAt: s.now().Add(ttl)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at"}),
	}).Create(&row).Error
}

func (s *DBOTPStore) Get(ctx context.Context, email string) (string, error) {
	var row models.OTPCode
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrMissing
	}
	if err != nil {
		return "", err
	}
	if !row.ExpiresAt.After(s.now()) {
		return "", ErrMissing
	}
	return row.Code, nil
}

func (s *DBOTPStore) Delete(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.OTPCode{}).Error
}

func (s *DBOTPStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&models.OTPCode{})
	return res.RowsAffected, res.Error
}
