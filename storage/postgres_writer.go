package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"aviasales-scraper/models"
)

// PostgresWriter persists parsed tickets to PostgreSQL, one row per ticket
// keyed by the session's route/date token.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS tickets (
			id           SERIAL PRIMARY KEY,
			session      VARCHAR(64) NOT NULL,
			ticket_index INT         NOT NULL,
			price        TEXT        NOT NULL DEFAULT '',
			price_value  INT,
			matches      BOOLEAN     NOT NULL DEFAULT FALSE,
			segments     JSONB       NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_tickets_session ON tickets(session);
		CREATE INDEX IF NOT EXISTS idx_tickets_matches ON tickets(matches);
	`)
	return err
}

// ClearSession deletes a session's previously stored tickets so reruns of
// the same route/date do not accumulate.
func (pw *PostgresWriter) ClearSession(token string) error {
	_, err := pw.db.Exec("DELETE FROM tickets WHERE session = $1", token)
	if err != nil {
		return fmt.Errorf("postgres: clear session: %w", err)
	}
	return nil
}

// WriteSession batch-inserts one session's parsed tickets, clearing that
// session's old rows first.
func (pw *PostgresWriter) WriteSession(token string, tickets []*models.ParsedTicket) error {
	if len(tickets) == 0 {
		return nil
	}

	if err := pw.ClearSession(token); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(tickets); i += batchSize {
		end := i + batchSize
		if end > len(tickets) {
			end = len(tickets)
		}
		if err := pw.insertBatch(token, tickets[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(token string, batch []*models.ParsedTicket) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, t := range batch {
		segments, err := json.Marshal(t.Segments)
		if err != nil {
			return fmt.Errorf("postgres: marshal segments: %w", err)
		}

		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			token, t.Source.Index, t.Source.Price, t.Source.PriceValue, t.Matches, segments)
	}

	query := fmt.Sprintf(`
		INSERT INTO tickets (session, ticket_index, price, price_value, matches, segments)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchSession retrieves one session's stored tickets in extraction order.
func (pw *PostgresWriter) FetchSession(token string) ([]*models.ParsedTicket, error) {
	rows, err := pw.db.Query(`
		SELECT ticket_index, price, price_value, matches, segments
		FROM tickets
		WHERE session = $1
		ORDER BY ticket_index
	`, token)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch session: %w", err)
	}
	defer rows.Close()

	var tickets []*models.ParsedTicket
	for rows.Next() {
		t := &models.ParsedTicket{}
		var segments []byte
		if err := rows.Scan(
			&t.Source.Index, &t.Source.Price, &t.Source.PriceValue, &t.Matches, &segments,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if err := json.Unmarshal(segments, &t.Segments); err != nil {
			return nil, fmt.Errorf("postgres: unmarshal segments: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
