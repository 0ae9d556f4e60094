package app

import (
	"database/sql"
	"os"

	"github.com/sims96/lesims-hrm-sub000/internal/shared/connection"

	"gorm.io/gorm"
)

// connectDatabase opens the shared postgres connection from environment
// configuration and returns both handles: gorm for the repositories and
// the raw *sql.DB for transactions and the outbox.
func connectDatabase() (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	return gormDB, sqlDB, nil
}
