package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
)

// EnsureSchema runs the setup script when the users table is missing. The
// schema is created ad hoc rather than through versioned migrations.
func EnsureSchema(database *sql.DB, schemaPath string) error {
	if HasTable(database, "users") {
		return nil
	}

	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema script: %w", err)
	}

	if _, err := database.Exec(string(raw)); err != nil {
		return fmt.Errorf("apply schema script: %w", err)
	}

	log.Printf("[DB] action=ensure_schema msg=schema applied from %s", schemaPath)
	return nil
}
