package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig loads database configuration from environment variables.
// DATABASE_SSL=true upgrades the connection to sslmode=require unless the
// URL already carries an sslmode of its own.
func LoadDBConfig() (*DBConfig, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if !strings.Contains(dsn, "sslmode=") {
		mode := "disable"
		if os.Getenv("DATABASE_SSL") == "true" {
			mode = "require"
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + "sslmode=" + mode
	}

	return &DBConfig{DSN: dsn}, nil
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(cfg *DBConfig) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Info().Msg("connected to PostgreSQL")
				return pool, nil
			}
		}
		log.Warn().Err(err).Msgf("failed to connect to database (attempt %d/%d), retrying in %v", i+1, maxRetries, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db *pgxpool.Pool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		ops_id TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		email TEXT UNIQUE,
		department TEXT,
		password_hash TEXT,
		is_first_time BOOLEAN NOT NULL DEFAULT true,
		must_change_password BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		ops_id TEXT NOT NULL,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS seatalk_sessions (
		session_id TEXT PRIMARY KEY,
		email TEXT,
		authenticated BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS dispatch_reports (
		dispatch_id BIGSERIAL PRIMARY KEY,
		cluster_name TEXT,
		station_name TEXT,
		region TEXT,
		status TEXT NOT NULL DEFAULT 'Pending',
		lh_trip_number TEXT,
		actual_docked_time TIMESTAMP WITH TIME ZONE,
		actual_depart_time TIMESTAMP WITH TIME ZONE,
		processor_name TEXT,
		plate_number TEXT,
		submitted_by_ops_id TEXT NOT NULL,
		confirmed_by_ops_id TEXT,
		confirmed_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		status_updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS outbound_map (
		id SERIAL PRIMARY KEY,
		hub_name TEXT,
		cluster_name TEXT,
		region TEXT,
		dock_number TEXT,
		active BOOLEAN NOT NULL DEFAULT true
	);

	CREATE TABLE IF NOT EXISTS kpi_mdt (
		date DATE NOT NULL,
		region TEXT,
		station_name TEXT,
		mdt_minutes DOUBLE PRECISION,
		trips INTEGER
	);

	CREATE TABLE IF NOT EXISTS kpi_intraday (
		date DATE NOT NULL,
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
		region TEXT,
		station_name TEXT,
		volume INTEGER
	);

	CREATE TABLE IF NOT EXISTS dispatch_google_sheet_rows (
		trip_number TEXT NOT NULL,
		to_dest_station_name TEXT,
		to_number TEXT,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
	);

	-- Indexes for performance
	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
	CREATE INDEX IF NOT EXISTS idx_dispatch_reports_status ON dispatch_reports(status);
	CREATE INDEX IF NOT EXISTS idx_dispatch_reports_region ON dispatch_reports(region);
	CREATE INDEX IF NOT EXISTS idx_dispatch_reports_created_at ON dispatch_reports(created_at);
	CREATE INDEX IF NOT EXISTS idx_outbound_map_cluster_name ON outbound_map(cluster_name);
	CREATE INDEX IF NOT EXISTS idx_sheet_rows_trip_number ON dispatch_google_sheet_rows(trip_number);
	`
	_, err := db.Exec(context.Background(), sql)
	if err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Info().Msg("AutoMigrate applied successfully")
	return nil
}
