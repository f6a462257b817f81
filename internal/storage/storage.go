package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3" // local database files
	"github.com/misterclayt0n/myfitlist/internal/models"
	"github.com/misterclayt0n/myfitlist/internal/observable"
	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // remote libSQL
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT '',
    age INTEGER NOT NULL DEFAULT -1,
    weight REAL NOT NULL DEFAULT -1,
    primary_workout_plan_id INTEGER REFERENCES workout_plans(id) ON DELETE SET NULL,
    primary_diet_plan_id INTEGER
);

CREATE TABLE IF NOT EXISTS workout_plans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    user_id INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS workout_days (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    label TEXT NOT NULL,
    muscle_group TEXT NOT NULL,
    plan_id INTEGER NOT NULL,
    FOREIGN KEY (plan_id) REFERENCES workout_plans(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS workout_exercises (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    sets INTEGER NOT NULL CHECK (sets BETWEEN 1 AND 15),
    reps INTEGER NOT NULL CHECK (reps BETWEEN 1 AND 40),
    day_id INTEGER NOT NULL,
    FOREIGN KEY (day_id) REFERENCES workout_days(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_workout_plans_user ON workout_plans(user_id);
CREATE INDEX IF NOT EXISTS idx_workout_days_plan ON workout_days(plan_id);
CREATE INDEX IF NOT EXISTS idx_workout_exercises_day ON workout_exercises(day_id);
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Storage struct {
	DB *sql.DB

	userMu sync.Mutex
	user   *observable.Value[models.User]
}

// Open connects to a local SQLite file ("file:..." or a plain path) or to a
// remote libSQL database ("libsql://", "https://", "wss://"), and makes sure
// the schema and the default user exist.
func Open(ctx context.Context, connectionString string) (*Storage, error) {
	driver := driverFor(connectionString)

	db, err := sql.Open(driver, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if driver == "sqlite3" {
		// A single connection keeps writes serialized and the foreign key
		// pragma in effect.
		db.SetMaxOpenConns(1)
	}

	if err := initializeDB(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logrus.WithField("driver", driver).Debug("database ready")
	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func driverFor(connectionString string) string {
	for _, prefix := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(connectionString, prefix) {
			return "libsql"
		}
	}
	return "sqlite3"
}

func initializeDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}

	// The application has a single local user.
	_, err := db.ExecContext(ctx, `
        INSERT INTO users (name, age, weight)
        SELECT '', -1, -1
        WHERE NOT EXISTS (SELECT 1 FROM users)
    `)
	if err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}
	return nil
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id > 0}
}
