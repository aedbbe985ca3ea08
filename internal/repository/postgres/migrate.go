package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	ddl, err := schemaFS.ReadFile("schema/" + dialectFor(db.DriverName()) + ".sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
