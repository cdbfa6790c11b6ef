package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLSlot is a Slot stored in the table 'slots' of a SQL database. The statements work with both
// the MySQL and the SQLite driver.
type SQLSlot struct {
	db        *sqlx.DB
	selectOne *sqlx.Stmt
	replace   *sqlx.Stmt
}

// sqliteSchema creates the slot table of a fresh SQLite file. MySQL databases are prepared with
// cmd/migration.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS slots (
		name  VARCHAR(255) PRIMARY KEY,
		value BLOB NOT NULL
	)
`

// MySQLDSN builds the data source name of the MySQL slot database.
func MySQLDSN(user string, password string, host string, database string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", user, password, host, database)
}

// OpenSQL connects to the database with the given driver ("mysql" or "sqlite") and prepares the
// slot statements.
func OpenSQL(driver string, dsn string) (*SQLSlot, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		if _, err := sqlDB.Exec(sqliteSchema); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to create slot table: %w", err)
		}
	}
	slot, err := NewSQLSlot(sqlDB, driver)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return slot, nil
}

// NewSQLSlot wraps an open database and prepares all statements. The database argument can be a
// real database for production use or a mock database within unit tests.
func NewSQLSlot(sqlDB *sql.DB, driver string) (*SQLSlot, error) {
	db := sqlx.NewDb(sqlDB, driver)
	selectOne, err := db.Preparex(`
		SELECT value FROM slots WHERE name = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare slot select: %w", err)
	}
	replace, err := db.Preparex(`
		REPLACE INTO slots (name, value) VALUES (?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare slot replace: %w", err)
	}
	return &SQLSlot{db: db, selectOne: selectOne, replace: replace}, nil
}

// Get returns the value stored under key.
func (s *SQLSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.selectOne.GetContext(ctx, &value, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key.
func (s *SQLSlot) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.replace.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", key, err)
	}
	return nil
}

// Close closes the statements and the database.
func (s *SQLSlot) Close() error {
	return errors.Join(s.selectOne.Close(), s.replace.Close(), s.db.Close())
}
