package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// any constant works, it only has to be shared by all instances
const migrationLockID = 7_310_425

type Migration struct {
	Version string
	Up      string
}

// LoadMigrations returns embedded migrations ordered by version.
// The version is the file name without extension.
func LoadMigrations() ([]Migration, error) {
	names, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	slices.Sort(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := migrationFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(path.Base(name), ".sql"),
			Up:      string(body),
		})
	}
	return migrations, nil
}

// Migrate applies pending migrations in one transaction guarded by an
// advisory lock, so concurrently starting replicas do not race.
func Migrate(ctx context.Context, db *sqlx.DB, logger *slog.Logger) error {
	migrations, err := LoadMigrations()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockID); err != nil {
		return fmt.Errorf("failed to take migration lock: %w", err)
	}

	const schemaTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := tx.ExecContext(ctx, schemaTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	qb := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var applied []string
	query, args := qb.Select("version").From("schema_migrations").MustSql()
	if err := tx.SelectContext(ctx, &applied, query, args...); err != nil {
		return fmt.Errorf("failed to read applied migrations: %w", err)
	}

	for _, m := range migrations {
		if slices.Contains(applied, m.Version) {
			continue
		}
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Version, err)
		}
		query, args := qb.Insert("schema_migrations").Columns("version").Values(m.Version).MustSql()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.Version, err)
		}
		logger.Info("migration applied", slog.String("version", m.Version))
	}

	return tx.Commit()
}

// Migrator runs Migrate as an application starter, before requests are served.
type Migrator struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewMigrator(db *sqlx.DB, logger *slog.Logger) *Migrator {
	return &Migrator{db: db, logger: logger}
}

func (m *Migrator) Start(ctx context.Context) error {
	if err := Migrate(ctx, m.db, m.logger); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}
	return nil
}
