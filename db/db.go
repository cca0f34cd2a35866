package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"carnes-boutique/logger"
)

// DB holds the database connection
var DB *sql.DB

// Schema creates the catalog tables when missing
const Schema = `
CREATE TABLE IF NOT EXISTS catalog_items (
	id              TEXT PRIMARY KEY,
	position        INTEGER NOT NULL,
	name            TEXT NOT NULL,
	category        TEXT NOT NULL,
	unit            TEXT NOT NULL CHECK (unit IN ('weight', 'piece')),
	wholesale_price NUMERIC NOT NULL CHECK (wholesale_price > 0),
	regional_prices JSONB NOT NULL DEFAULT '{}'::jsonb,
	annotations     JSONB NOT NULL DEFAULT '[]'::jsonb,
	image_file_id   TEXT,
	import_id       TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

-- unscaled so parsed prices round-trip exactly
ALTER TABLE catalog_items ALTER COLUMN wholesale_price TYPE NUMERIC;

CREATE INDEX IF NOT EXISTS catalog_items_position_idx ON catalog_items (position);

CREATE TABLE IF NOT EXISTS catalog_snapshots (
	id          UUID PRIMARY KEY,
	imported_at TIMESTAMPTZ NOT NULL,
	source      TEXT NOT NULL,
	item_count  INTEGER NOT NULL,
	items       JSONB NOT NULL
);
`

// ConnString builds the connection string from DATABASE_URL or DB_* variables
func ConnString() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode), nil
}

// InitDB opens the pgx-backed connection pool and applies the schema
func InitDB(ctx context.Context) error {
	connStr, err := ConnString()
	if err != nil {
		return err
	}

	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	DB.SetMaxOpenConns(10)
	DB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := DB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Log.Info("✓ Database connection established successfully", zap.Int("max_open_conns", 10))
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
