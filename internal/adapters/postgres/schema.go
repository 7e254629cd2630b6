package postgres

import (
	"context"
	"fmt"
	"os"
)

// ApplySchema executes the schema script at path in a single round trip.
// The script is expected to be idempotent (CREATE TABLE IF NOT EXISTS ...).
func ApplySchema(ctx context.Context, db *DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, string(data)); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
