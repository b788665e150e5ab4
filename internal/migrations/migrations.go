// Package migrations embeds the schema scripts. Tests feed the same files to the
// postgres container as init scripts.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var files embed.FS

// Up applies every *.up.sql script in name order. Scripts are idempotent.
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("files.ReadFile[%s]: %w", name, err)
		}

		if _, err := pool.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("pool.Exec[%s]: %w", name, err)
		}
	}

	return nil
}

// UpScripts lists the up scripts relative to this directory, in apply order.
func UpScripts() []string {
	names, _ := fs.Glob(files, "*.up.sql")
	sort.Strings(names)
	return names
}
