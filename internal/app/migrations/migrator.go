package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/docsystem/internal/db"
	"github.com/yigit/docsystem/internal/pkg/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

const ledgerTable = `
	CREATE TABLE IF NOT EXISTS migrations (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

// Database is what the migrator needs from the pool
type Database interface {
	db.Querier
	db.TxBeginner
}

// Migration is one SQL file
type Migration struct {
	Name string
	SQL  string
}

// Migrator applies SQL files and records each in the migrations ledger
type Migrator struct {
	db   Database
	fsys fs.FS
	dir  string
}

// NewMigrator creates a migrator over the embedded schema
func NewMigrator(database Database) *Migrator {
	return &Migrator{db: database, fsys: embedded, dir: "sql"}
}

// NewMigratorFS creates a migrator reading .sql files from dir in fsys
func NewMigratorFS(database Database, fsys fs.FS, dir string) *Migrator {
	return &Migrator{db: database, fsys: fsys, dir: dir}
}

// Load reads every .sql file in name order
func (m *Migrator) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(m.fsys, path.Join(m.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		out = append(out, Migration{Name: name, SQL: string(content)})
	}
	return out, nil
}

// Pending filters out migrations already recorded in the ledger
func Pending(all []Migration, applied map[string]bool) []Migration {
	var out []Migration
	for _, mig := range all {
		if !applied[mig.Name] {
			out = append(out, mig)
		}
	}
	return out
}

func (m *Migrator) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.Query(ctx, `SELECT name FROM migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations ledger: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations ledger: %w", err)
	}

	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out, nil
}

// Migrate applies all pending migrations in a single transaction. A failure
// leaves the ledger and the schema as they were.
func (m *Migrator) Migrate(ctx context.Context) error {
	if _, err := m.db.Exec(ctx, ledgerTable); err != nil {
		return fmt.Errorf("failed to create migrations ledger: %w", err)
	}

	all, err := m.Load()
	if err != nil {
		return err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	pending := Pending(all, applied)
	if len(pending) == 0 {
		logger.Info().Int("known", len(all)).Msg("Database schema is up to date")
		return nil
	}

	return db.WithTransaction(ctx, m.db, func(ctx context.Context, q db.Querier) error {
		for _, mig := range pending {
			if _, err := q.Exec(ctx, mig.SQL); err != nil {
				return fmt.Errorf("migration %s failed: %w", mig.Name, err)
			}
			if _, err := q.Exec(ctx, `INSERT INTO migrations (name) VALUES ($1)`, mig.Name); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
			}
			logger.Info().Str("migration", mig.Name).Msg("Migration applied")
		}
		return nil
	})
}
