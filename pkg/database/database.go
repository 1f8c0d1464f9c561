package database

import (
	"fmt"
	"log"

	"kstudent_backend/internal/config"
	"kstudent_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	// _foreign_keys is off by default in SQLite; the enrollment tables
	// rely on it.
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY
	// churn during batch imports.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Classroom{},
		&model.Student{},
		&model.Subject{},
		&model.Enrollment{},
		&model.GradeLog{},
		&model.BehaviorLog{},
		&model.Request{},
		&model.Schedule{},
		&model.Announcement{},
	)
}
