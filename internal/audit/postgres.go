package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/tungshoop/tungcart/internal/models"
	"github.com/tungshoop/tungcart/internal/utils"
)

const timestampLayout = "02/01/2006 | 15:04:05"

type postgresSink struct {
	db       *sql.DB
	hostname string
}

// OpenDatabase connects to the audit database and verifies the connection.
func OpenDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	ctx, cancel := utils.WithDBTimeout(context.Background())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging audit database: %w", err)
	}

	return db, nil
}

// NewPostgresSink returns a sink writing to the logs table, creating the
// table when it does not exist yet.
func NewPostgresSink(db *sql.DB) (Sink, error) {
	query := `
		CREATE TABLE IF NOT EXISTS logs (
			id SERIAL PRIMARY KEY,
			computer_name TEXT,
			timestamp TEXT,
			action TEXT,
			status TEXT,
			cart_state JSONB
		)
	`

	ctx, cancel := utils.WithDBTimeout(context.Background())
	defer cancel()

	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, fmt.Errorf("creating logs table: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &postgresSink{db: db, hostname: hostname}, nil
}

func (s *postgresSink) Log(ctx context.Context, action, status string, snapshot *models.Snapshot) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}

	query := `
		INSERT INTO logs (computer_name, timestamp, action, status, cart_state)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = s.db.ExecContext(dbCtx, query, s.hostname, time.Now().Format(timestampLayout), action, status, payload)
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	return nil
}
