package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	dbmigrations "wiki-quiz/database"
	"wiki-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Oracle errors for objects that already exist
var oracleAlreadyExists = []string{"ORA-00955", "ORA-01408"}

// RunMigrations applies the embedded migrations for driver. SQLite is versioned by
// golang-migrate; Oracle runs every *.up.sql file in order and tolerates objects that
// already exist, so it is safe to call on every start.
func RunMigrations(db *sql.DB, driver string) error {
	switch driver {
	case "sqlite3":
		return migrateSQLite(db)
	case "oracle", "godror":
		return migrateOracle(db, dbmigrations.Migrations, "migrations/oracle")
	default:
		return fmt.Errorf("no migrations for driver %q", driver)
	}
}

func migrateSQLite(db *sql.DB) error {
	src, err := iofs.New(dbmigrations.Migrations, "migrations/sqlite3")
	if err != nil {
		return fmt.Errorf("could not open sqlite3 migrations: %w", err)
	}
	target, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite3 migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", target)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply sqlite3 migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations completed successfully",
		zap.String("driver", "sqlite3"),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

func migrateOracle(db *sql.DB, fsys fs.FS, dir string) error {
	l := logger.Get()

	files, err := upMigrations(fsys, dir)
	if err != nil {
		return err
	}

	for _, name := range files {
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.Exec(stmt); err != nil {
			if isAlreadyExists(err) {
				l.Debug("Migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}

		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Migrations completed successfully", zap.String("driver", "oracle"))
	return nil
}

// upMigrations lists the *.up.sql files of dir in version order.
func upMigrations(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func isAlreadyExists(err error) bool {
	msg := err.Error()
	for _, code := range oracleAlreadyExists {
		if strings.Contains(msg, code) {
			return true
		}
	}
	return false
}
