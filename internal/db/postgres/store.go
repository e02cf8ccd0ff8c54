package postgres

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"compliance-intel-backend/config"
	"compliance-intel-backend/internal/core/port"
)

// DB wraps a *sql.DB with the connection lifecycle this service needs:
// open, pool-tune, and a domain-aware health probe.
type DB struct {
	*sql.DB
}

// Connect opens the Postgres pool backing every store method.
func Connect(cfg *config.Config) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return &DB{db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// HealthStatus is what GET /api/health reports about the store: not
// just "can we reach Postgres" but "can we reach the derived schema
// this service owns and writes risk scores into".
type HealthStatus struct {
	Connected       bool
	OpenConnections int
	InUse           int
	Idle            int
	ScoredLandlords int64
	ScoredListings  int64
}

// HealthCheck pings the pool and counts the landlord and listing rows
// of the risk_scores table the scheduler's daily job writes to, so a
// degraded response
// means more than "the TCP connection is up" — it means the schema
// this service actually depends on is queryable.
func (db *DB) HealthCheck() (HealthStatus, error) {
	stats := db.DB.Stats()
	status := HealthStatus{
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
	}

	if err := db.DB.Ping(); err != nil {
		return status, fmt.Errorf("database ping failed: %w", err)
	}
	status.Connected = true

	if err := db.DB.QueryRow(`SELECT count(*) FROM risk_scores WHERE target_type = 'landlord'`).Scan(&status.ScoredLandlords); err != nil {
		return status, fmt.Errorf("risk_scores (landlord) unreachable: %w", err)
	}
	if err := db.DB.QueryRow(`SELECT count(*) FROM risk_scores WHERE target_type = 'listing'`).Scan(&status.ScoredListings); err != nil {
		return status, fmt.Errorf("risk_scores (listing) unreachable: %w", err)
	}

	return status, nil
}

// RunMigration runs the initial database migration.
func (db *DB) RunMigration(migrationSQL string) error {
	if _, err := db.DB.Exec(migrationSQL); err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}

	log.Println("Database migration completed successfully")
	return nil
}

// store is the single concrete implementation of port.Store. Unlike
// the teacher's one-repository-per-entity split, the compliance-intel
// schema has no write paths of its own beyond the derived tables this
// service owns, so one struct backed by one *DB covers every method;
// the methods themselves are still grouped into per-entity files
// (landlord_store.go, listing_store.go, ...) to mirror that split.
type store struct {
	db *DB
}

// NewStore builds the port.Store implementation backing the scoring,
// enrichment, reports, and scheduler packages.
func NewStore(db *DB) port.Store {
	return &store{db: db}
}
