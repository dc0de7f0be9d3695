// Package storage is the SQLite backend. The snapshot keeps its
// whole-document semantics here too: the property collection lives as
// one JSON document in a single row, replaced on every save, and the
// user list as a small table rewritten wholesale. No partial updates.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"frota/internal/auth"
	"frota/internal/core"
	"frota/internal/store"

	_ "modernc.org/sqlite"
)

const snapshotName = "properties"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadAll implements store.PropertyRepository.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]core.Property, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		`SELECT body FROM snapshots WHERE name = ?`, snapshotName).Scan(&body)
	if err == sql.ErrNoRows {
		return []core.Property{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var props []core.Property
	if err := json.Unmarshal([]byte(body), &props); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w: %v", store.ErrSnapshotCorrupt, err)
	}
	if props == nil {
		props = []core.Property{}
	}
	return props, nil
}

// SaveAll implements store.PropertyRepository.
func (r *SQLiteRepository) SaveAll(ctx context.Context, props []core.Property) error {
	body, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		snapshotName, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot saved to SQLite",
		"properties", len(props),
		"bytes", len(body))
	return nil
}

// LoadUsers implements auth.Repository.
func (r *SQLiteRepository) LoadUsers(ctx context.Context) ([]auth.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT phone, password FROM users ORDER BY created_at, phone`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()

	var users []auth.User
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.Phone, &u.Password); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// SaveUsers implements auth.Repository with the same replace-wholesale
// contract the snapshot uses.
func (r *SQLiteRepository) SaveUsers(ctx context.Context, users []auth.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin users tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	now := time.Now().UTC()
	for _, u := range users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (phone, password, created_at) VALUES (?, ?, ?)`,
			u.Phone, u.Password, now); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit users: %w", err)
	}
	return nil
}
