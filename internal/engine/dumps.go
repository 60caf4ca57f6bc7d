package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// Dump is a page that produced no payload, kept for offline triage.
type Dump struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url"`
	Reason    string    `json:"reason"`
	Verdict   string    `json:"verdict,omitempty"`
	Bytes     int       `json:"bytes"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DumpStore persists failure dumps.
type DumpStore interface {
	Save(ctx context.Context, d Dump) (int64, error)
	Recent(ctx context.Context, kind string, limit int) ([]Dump, error)
	Close()
}

var dumpStore DumpStore

// SetDumpStore replaces the package-level store; nil disables dumps.
func SetDumpStore(s DumpStore) { dumpStore = s }

// OpenDumpStore picks a backend by DSN: postgres:// and postgresql:// URLs go
// to Postgres, anything else is a SQLite file path.
func OpenDumpStore(ctx context.Context, dsn string) (DumpStore, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return openPGDumps(ctx, dsn)
	}
	return openSQLiteDumps(dsn)
}

// SaveDump stores body capped at DumpMaxBytes. It is a no-op without a store.
func SaveDump(ctx context.Context, kind, pageURL, reason string, diag *PageDiagnosis, body string) {
	if dumpStore == nil {
		return
	}
	d := Dump{Kind: kind, URL: pageURL, Reason: reason, Bytes: len(body), Body: body, CreatedAt: time.Now().UTC()}
	if diag != nil {
		d.Verdict = diag.Verdict
	}
	if limit := cfg.DumpMaxBytes; limit > 0 && len(d.Body) > limit {
		// Postgres TEXT rejects a split UTF-8 sequence.
		for limit > 0 && !utf8.RuneStart(d.Body[limit]) {
			limit--
		}
		d.Body = d.Body[:limit]
	}
	id, err := dumpStore.Save(ctx, d)
	if err != nil {
		slog.Warn("dumps: save failed", slog.String("kind", kind), slog.Any("error", err))
		return
	}
	metrics.DumpsSaved.Add(1)
	slog.Info("dumps: saved unreadable page", slog.Int64("id", id), slog.String("kind", kind), slog.String("verdict", d.Verdict))
}

// RecentDumps lists the newest dumps without bodies. kind "" matches all.
func RecentDumps(ctx context.Context, kind string, limit int) ([]Dump, error) {
	if dumpStore == nil {
		return nil, errors.New("dump store is not configured (set DUMP_DSN)")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return dumpStore.Recent(ctx, kind, limit)
}

const dumpColumns = "id, kind, url, reason, verdict, bytes, created_at"

// --- SQLite ---

type sqliteDumps struct {
	db *sql.DB
}

func openSQLiteDumps(path string) (*sqliteDumps, error) {
	if path == "" {
		return nil, errors.New("dumps: empty sqlite path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("dumps: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dumps: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS dumps (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		kind       TEXT NOT NULL,
		url        TEXT NOT NULL,
		reason     TEXT NOT NULL,
		verdict    TEXT NOT NULL DEFAULT '',
		bytes      INTEGER NOT NULL,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("dumps: init schema: %w", err)
	}
	return &sqliteDumps{db: db}, nil
}

func (s *sqliteDumps) Save(ctx context.Context, d Dump) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO dumps (kind, url, reason, verdict, bytes, body, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Kind, d.URL, d.Reason, d.Verdict, d.Bytes, d.Body, d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *sqliteDumps) Recent(ctx context.Context, kind string, limit int) ([]Dump, error) {
	q := `SELECT ` + dumpColumns + ` FROM dumps`
	args := []any{}
	if kind != "" {
		q += ` WHERE kind = ?`
		args = append(args, kind)
	}
	q += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dump
	for rows.Next() {
		var d Dump
		var created string
		if err := rows.Scan(&d.ID, &d.Kind, &d.URL, &d.Reason, &d.Verdict, &d.Bytes, &created); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *sqliteDumps) Close() { s.db.Close() }

// --- Postgres ---

type pgDumps struct {
	pool *pgxpool.Pool
}

func openPGDumps(ctx context.Context, dsn string) (*pgDumps, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DUMP_DSN: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS yt_dumps (
		id         BIGSERIAL PRIMARY KEY,
		kind       TEXT NOT NULL,
		url        TEXT NOT NULL,
		reason     TEXT NOT NULL,
		verdict    TEXT NOT NULL DEFAULT '',
		bytes      INTEGER NOT NULL,
		body       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("dumps: init schema: %w", err)
	}
	slog.Info("dumps: postgres connected", slog.String("addr", config.ConnConfig.Host))
	return &pgDumps{pool: pool}, nil
}

func (p *pgDumps) Save(ctx context.Context, d Dump) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx,
		`INSERT INTO yt_dumps (kind, url, reason, verdict, bytes, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		d.Kind, d.URL, d.Reason, d.Verdict, d.Bytes, d.Body, d.CreatedAt).Scan(&id)
	return id, err
}

func (p *pgDumps) Recent(ctx context.Context, kind string, limit int) ([]Dump, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+dumpColumns+` FROM yt_dumps
		 WHERE $1 = '' OR kind = $1
		 ORDER BY id DESC LIMIT $2`, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Dump
	for rows.Next() {
		var d Dump
		if err := rows.Scan(&d.ID, &d.Kind, &d.URL, &d.Reason, &d.Verdict, &d.Bytes, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (p *pgDumps) Close() { p.pool.Close() }
