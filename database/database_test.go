package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/anjiri1684/institute_manager/models"
	"gorm.io/gorm"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestResultUniqueIndex(t *testing.T) {
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "u.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	test := models.Test{TestName: "Quiz1", CourseName: "MSCIT"}
	if err := db.Create(&test).Error; err != nil {
		t.Fatalf("create test: %v", err)
	}

	first := models.StudentResult{TestID: test.ID, Name: "A", Course: "MSCIT", Email: "a@x.com", TotalMarks: 5}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	second := models.StudentResult{TestID: test.ID, Name: "A", Course: "MSCIT", Email: "a@x.com", TotalMarks: 3}
	err = db.Create(&second).Error
	if !IsUniqueViolation(err) {
		t.Fatalf("second insert error = %v, want unique violation", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{gorm.ErrDuplicatedKey, true},
		{errors.New(`ERROR: duplicate key value violates unique constraint "idx_result_test_email" (SQLSTATE 23505)`), true},
		{errors.New("Error 1062 (23000): Duplicate entry '7-a@x.com' for key 'idx_result_test_email'"), true},
		{errors.New("connection refused"), false},
	}
	for _, tc := range tests {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Errorf("IsUniqueViolation(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
