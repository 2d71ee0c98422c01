package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var fs embed.FS

// Dialects understood by Run, named after goose's.
const (
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

// Run applies all pending migrations of the dialect against db.
func Run(db *sql.DB, dialect string) error {
	dir := "postgres"
	if dialect == SQLite {
		dir = "sqlite"
	}

	goose.SetBaseFS(fs)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
