package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"careerboard/pkg/logger"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// retryDelay is how long Connect waits between failed pings.
var retryDelay = 2 * time.Second

// Connect opens the PostgreSQL pool and pings it, retrying a few times in case
// of temporary DNS/network blips.
func Connect(dsn string, retries int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := ping(db, retries); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ping(db *sql.DB, retries int) error {
	if retries < 1 {
		retries = 1
	}
	var err error
	for i := 0; i < retries; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in %s... (%v)", retryDelay, err)
		time.Sleep(retryDelay)
	}
	return fmt.Errorf("could not connect to database after %d attempts: %w", retries, err)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.Sugar.Info("Database schema is up to date")
	return nil
}
