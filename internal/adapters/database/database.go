// Package database implements the repository interfaces against
// PostgreSQL. Every adapter tolerates a nil postgres client: reads
// return empty results and writes return a typed UNAVAILABLE error, so
// an unconfigured database degrades features instead of crashing the
// process. The image list is the one read that reports the missing
// database instead.
package database

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/knowhealth/backend/pkg/errors"
)

func errNotConfigured() error {
	return apperrors.NewUnavailableError("database is not configured")
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// newBuilder returns a goqu query builder over the client, or nil when
// the gateway is inert.
func newBuilder(client *postgres.Client) *goqu.Database {
	if client == nil {
		return nil
	}
	return goqu.New("postgres", client.DB())
}

// countRows runs a COUNT(*) over one table with an optional predicate.
func countRows(ctx context.Context, client *postgres.Client, db *goqu.Database, table string, where goqu.Expression) (int, error) {
	ds := db.From(table).Select(goqu.COUNT("*"))
	if where != nil {
		ds = ds.Where(where)
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count "+table, err)
	}

	return count, nil
}
