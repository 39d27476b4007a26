// Package db opens the PostgreSQL connection shared by the importer, the
// extraction runner, and the web API.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/abbrev-extract/internal/config"
)

// Connection holds the database connection
type Connection struct {
	DB *sql.DB
}

// NewConnection opens and pings a pooled connection configured by the
// standard PG* environment variables.
func NewConnection() (*Connection, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "abbrev")
	password := config.GetEnv("PGPASSWORD", "abbrev")
	dbname := config.GetEnv("PGDATABASE", "abbrev")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Connection{DB: db}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}
