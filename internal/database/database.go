package database

import (
	"fmt"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	_ "github.com/godror/godror" // Oracle driver (cgo, ODPI-C)
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	_ "github.com/sijms/go-ora/v2"  // Oracle driver (pure Go)
	"go.uber.org/zap"
)

func init() {
	// go-ora registers itself as "oracle", which sqlx does not know about.
	// Queries are written with ? and rebound to :arg1 style placeholders.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// Connect opens the configured database and verifies the connection.
func Connect(cfg *config.Config) (*sqlx.DB, error) {
	driver := cfg.DB.Driver
	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	switch driver {
	case "sqlite3":
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
	default:
		if cfg.DB.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
			db.SetMaxIdleConns(cfg.DB.MaxOpenConns)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logger.Get().Info("Database connection established", zap.String("driver", driver))
	return db, nil
}
