package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"welfare-ledger/internal/pkg/apperrors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	createMigrationsTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
        version TEXT PRIMARY KEY,
        applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())`
	selectAppliedMigrationsSQL = `SELECT version FROM schema_migrations`
	insertMigrationSQL         = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

type Migration struct {
	Version string
	SQL     string
}

// LoadMigrations returns the embedded migrations ordered by file name.
func LoadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		body, err := migrationFiles.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(entry.Name(), ".sql"),
			SQL:     string(body),
		})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// Migrate applies every embedded migration that is not yet recorded in schema_migrations.
// Each migration runs in its own transaction. It returns the versions applied by this call.
func Migrate(ctx context.Context, db DBPool, logger *slog.Logger) ([]string, error) {
	logger = logger.With(slog.String("component", "migrator"))

	migrations, err := LoadMigrations()
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(ctx, createMigrationsTableSQL); err != nil {
		return nil, fmt.Errorf("%w: failed to create schema_migrations: %w", apperrors.ErrDatabase, err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		logger.InfoContext(ctx, "Applying migration", "version", m.Version)
		if err := applyMigration(ctx, db, m); err != nil {
			logger.ErrorContext(ctx, "Migration failed", "version", m.Version, "error", err)
			return done, err
		}
		done = append(done, m.Version)
	}

	logger.InfoContext(ctx, "Migrations complete", "applied", len(done))
	return done, nil
}

func appliedVersions(ctx context.Context, db DBPool) (map[string]bool, error) {
	rows, err := db.Query(ctx, selectAppliedMigrationsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read applied migrations: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("%w: failed to scan migration version: %w", apperrors.ErrDatabase, err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return applied, nil
}

func applyMigration(ctx context.Context, db DBPool, m Migration) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin migration %s: %w", apperrors.ErrDatabase, m.Version, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		return fmt.Errorf("%w: migration %s: %w", apperrors.ErrDatabase, m.Version, err)
	}
	if _, err := tx.Exec(ctx, insertMigrationSQL, m.Version); err != nil {
		return fmt.Errorf("%w: failed to record migration %s: %w", apperrors.ErrDatabase, m.Version, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: failed to commit migration %s: %w", apperrors.ErrDatabase, m.Version, err)
	}
	return nil
}
