package sqlite

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// migration one embedded schema step
type migration struct {
	version string
	up      string
}

// parseMigration keeps the statements that follow "-- +migrate Up" and stop at
// "-- +migrate Down". A file without markers is all up.
func parseMigration(version, body string) migration {
	if !strings.Contains(body, "-- +migrate Up") {
		return migration{version: version, up: strings.TrimSpace(body)}
	}

	var up []string
	inUp := false
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		switch strings.TrimSpace(line) {
		case "-- +migrate Up":
			inUp = true
			continue
		case "-- +migrate Down":
			inUp = false
			continue
		}
		if inUp {
			up = append(up, line)
		}
	}
	return migration{version: version, up: strings.TrimSpace(strings.Join(up, "\n"))}
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	steps := make([]migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		steps = append(steps, parseMigration(strings.TrimSuffix(path.Base(name), ".sql"), string(body)))
	}
	return steps, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_versions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		done[version] = true
	}
	return done, rows.Err()
}

// applyMigrations brings the schema up to date, one transaction per step.
func applyMigrations(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	steps, err := loadMigrations(fsys)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_versions (
    version TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL
)`); err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}
	done, err := appliedVersions(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema_versions: %w", err)
	}

	for _, step := range steps {
		if done[step.version] || step.up == "" {
			continue
		}
		if err := applyStep(ctx, db, step); err != nil {
			return fmt.Errorf("migration %s: %w", step.version, err)
		}
	}
	return nil
}

func applyStep(ctx context.Context, db *sql.DB, step migration) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, step.up); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO schema_versions (version, applied_at) VALUES (?, ?)`,
		step.version, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	return tx.Commit()
}
