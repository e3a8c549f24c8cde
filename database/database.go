package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	config "github.com/anjiri1684/institute_manager/configs"
	"github.com/anjiri1684/institute_manager/models"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var DB *gorm.DB

func ConnectDB() {
	driver := config.ConfigDefault("DB_DRIVER", DriverPostgres)
	dsn := config.Config("DATABASE_URL")
	if dsn == "" {
		dsn = buildDSN(driver)
	}

	db, err := Open(driver, dsn)
	if err != nil {
		log.Fatal().Err(err).Str("driver", driver).Msg("🔥 Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(config.ConfigInt("DB_MAX_OPEN_CONNS", 25))
		sqlDB.SetMaxIdleConns(config.ConfigInt("DB_MAX_IDLE_CONNS", 5))
		sqlDB.SetConnMaxLifetime(config.ConfigDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute))
	}

	DB = db
	log.Info().Str("driver", driver).Msg("✅ Database connected successfully")
}

// Open returns a gorm handle for the given driver. TranslateError is on so
// unique violations surface as gorm.ErrDuplicatedKey on every dialect.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		if !strings.Contains(dsn, "_pragma") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func buildDSN(driver string) string {
	host := config.ConfigDefault("DB_HOST", "localhost")
	user := config.Config("DB_USER")
	password := config.Config("DB_PASSWORD")
	name := config.ConfigDefault("DB_NAME", "institute")

	switch driver {
	case DriverMySQL:
		port := config.ConfigDefault("DB_PORT", "3306")
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			user, password, host, port, name)
	case DriverSQLite:
		return config.ConfigDefault("DB_PATH", "institute.db")
	default:
		port := config.ConfigDefault("DB_PORT", "5432")
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			host, user, password, name, port, config.ConfigDefault("DB_SSLMODE", "disable"))
	}
}

func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatal().Err(err).Msg("🔥 Failed to migrate database")
	}
	log.Info().Msg("✅ Database migration successful")
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Institute{},
		&models.OTPCode{},
		&models.Student{},
		&models.TypingStudent{},
		&models.Course{},
		&models.CourseStudent{},
		&models.Test{},
		&models.TestQuestion{},
		&models.StudentResult{},
		&models.ExamRegistration{},
		&models.ExamAttachment{},
	)
}

// IsUniqueViolation reports whether err came from a unique index. Drivers
// that do not translate errors are matched on their message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "sqlstate 23505")
}
