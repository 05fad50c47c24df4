package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteConfig configures a SQLiteStore.
type SQLiteConfig struct {
	Path        string
	Limit       int
	BusyTimeout time.Duration
}

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db    *sqlx.DB
	limit int
}

type entryRow struct {
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	Payload   string `db:"payload"`
	CreatedAt string `db:"created_at"`
}

// OpenSQLite opens (creating if needed) the database at cfg.Path and
// migrates the schema.
func OpenSQLite(ctx context.Context, cfg SQLiteConfig) (*SQLiteStore, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single connection; writes are serialized.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLiteStore{db: db, limit: limit}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS history (
                seq INTEGER PRIMARY KEY AUTOINCREMENT,
                id TEXT NOT NULL UNIQUE,
                kind TEXT NOT NULL,
                payload TEXT NOT NULL,
                created_at TEXT NOT NULL
        );`,
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for i, stmt := range schemaStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("execute schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Append(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	var payload any = e.Simple
	if e.Kind == KindChain {
		payload = e.Chain
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode entry %s: %w", e.ID, err)
	}

	var size int
	err = withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO history (id, kind, payload, created_at) VALUES (?, ?, ?, ?)`,
			e.ID, string(e.Kind), string(raw), e.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
			s.limit,
		); err != nil {
			return fmt.Errorf("evict old entries: %w", err)
		}
		return tx.GetContext(ctx, &size, `SELECT COUNT(*) FROM history`)
	})
	if err != nil {
		return err
	}

	recordAppend(e.Kind, size)
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, kind, payload, created_at FROM history ORDER BY seq DESC LIMIT ?`, s.limit,
	); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e, err := row.entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	recordClear()
	return nil
}

func (r entryRow) entry() (Entry, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at of %s: %w", r.ID, err)
	}

	e := Entry{ID: r.ID, Kind: Kind(r.Kind), CreatedAt: created}
	switch e.Kind {
	case KindSimple:
		e.Simple = &SimpleRecord{}
		err = json.Unmarshal([]byte(r.Payload), e.Simple)
	case KindChain:
		e.Chain = &ChainRecord{}
		err = json.Unmarshal([]byte(r.Payload), e.Chain)
	default:
		err = fmt.Errorf("unknown kind %q", r.Kind)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("decode entry %s: %w", r.ID, err)
	}
	return e, nil
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
