package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/saltyorg/todo-api/internal/config"
)

const initialPingTimeout = 5 * time.Second

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// DB wraps the pooled database connection
type DB struct {
	conn   *sqlx.DB
	driver string
}

// New opens the connection pool described by cfg.
// A failed initial ping is logged but not returned: the service starts with the
// database down and reports it through the health endpoint.
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := &DB{conn: conn, driver: cfg.Driver}

	pingCtx, cancel := context.WithTimeout(ctx, initialPingTimeout)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("driver", cfg.Driver).Msg("Database not reachable at startup")
	} else {
		log.Debug().Str("driver", cfg.Driver).Msg("Database connection established")
	}

	return db, nil
}

// dataSourceName builds the driver specific DSN
func dataSourceName(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Path:   "/" + cfg.Name,
		}
		if cfg.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": {cfg.SSLMode}}.Encode()
		}
		return u.String(), nil
	case config.DriverSQLite:
		// WAL allows concurrent readers while writes are serialized
		return cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Driver returns the name of the database driver in use
func (db *DB) Driver() string {
	return db.driver
}

// Stats returns connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.conn.Stats()
}

// Close closes the pool, waiting for checked out connections to be returned
func (db *DB) Close() error {
	return db.conn.Close()
}
