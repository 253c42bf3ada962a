package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"maison-gda/internal/config"
)

// Service owns the shared connection pool
type Service interface {
	DB() *sql.DB
	Health(ctx context.Context) map[string]string
	Close() error
}

type service struct {
	db *sql.DB
}

const (
	maxAttempts = 5
	baseDelay   = 500 * time.Millisecond
)

// DSN builds a pgx connection string from configuration
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&search_path=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password),
		cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode, url.QueryEscape(cfg.Schema),
	)
}

// New opens and pings the database, retrying while it comes up
func New(ctx context.Context, cfg *config.DatabaseConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	db, err := Open(ctx, DSN(cfg))
	if err != nil {
		return nil, err
	}
	return &service{db: db}, nil
}

// Open connects to dsn with exponential backoff and pool settings applied
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			lastErr = err
			if !sleepWithBackoff(ctx, attempt) {
				break
			}
			continue
		}

		setPool(db)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return db, nil
		}

		_ = db.Close()
		if !sleepWithBackoff(ctx, attempt) {
			break
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, lastErr)
}

func setPool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
}

// sleepWithBackoff waits base*2^(attempt-1), capped at 5s. It returns false
// when ctx ends first.
func sleepWithBackoff(ctx context.Context, attempt int) bool {
	d := baseDelay << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *service) DB() *sql.DB {
	return s.db
}

// Health pings the database and reports pool statistics
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = "database unreachable"
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)
	stats["wait_count"] = fmt.Sprint(dbStats.WaitCount)

	return stats
}

func (s *service) Close() error {
	return s.db.Close()
}
