// Package migrations holds the SQL schema, applied in file name order.
package migrations

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

//go:embed *.sql
var files embed.FS

// Names lists the migration files in the order they are applied.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Apply runs every migration against db. Migrations are idempotent, so
// applying them twice is safe.
func Apply(ctx context.Context, db *pgxpool.Pool) ([]string, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}
	applied := make([]string, 0, len(names))
	for _, name := range names {
		b, err := files.ReadFile(name)
		if err != nil {
			return applied, oops.In("migrations").With("file", name).Wrapf(err, "read")
		}
		if _, err := db.Exec(ctx, string(b)); err != nil {
			return applied, oops.In("migrations").With("file", name).Wrapf(err, "apply")
		}
		applied = append(applied, name)
	}
	return applied, nil
}
