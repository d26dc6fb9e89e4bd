// Package sqlxrepos implements the domain repositories on top of jmoiron/sqlx.
// Queries are written with "?" placeholders and rebound for the executor's driver,
// so every repository runs against both SQLite and Postgres.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/jamespares/chinaprof/core"
)

// postgres error codes
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

type repository struct {
	exec core.DBExecutor
}

func (repo repository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 && svcExec[0] != nil {
		return svcExec[0]
	}
	return repo.exec
}

func get(ctx context.Context, exe core.DBExecutor, dst interface{}, query string, args ...interface{}) error {
	return trapConnErr(sqlx.GetContext(ctx, exe, dst, exe.Rebind(query), args...))
}

func selectAll(ctx context.Context, exe core.DBExecutor, dst interface{}, query string, args ...interface{}) error {
	return trapConnErr(sqlx.SelectContext(ctx, exe, dst, exe.Rebind(query), args...))
}

// execAffected runs query and reports how many rows it touched.
func execAffected(ctx context.Context, exe core.DBExecutor, query string, args ...interface{}) (int64, error) {
	res, err := exe.ExecContext(ctx, exe.Rebind(query), args...)
	if err != nil {
		return 0, trapConnErr(err)
	}
	return res.RowsAffected()
}

// execOne runs a statement that must touch exactly one row, returning notFound otherwise.
func execOne(ctx context.Context, exe core.DBExecutor, notFound error, msg, query string, args ...interface{}) error {
	n, err := execAffected(ctx, exe, query, args...)
	if err != nil {
		return trapConstraintErr(err, msg)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// trapConnErr marks a lost database connection as fatal to the app.
func trapConnErr(err error) error {
	if err != nil && errors.Is(err, sql.ErrConnDone) {
		return core.NewShutdownError(err.Error())
	}
	return err
}

// trapNoRowsErr maps the driver's "no rows" err to the domain's notFound.
func trapNoRowsErr(err error, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// trapConstraintErr maps foreign key and unique violations to core sentinels.
func trapConstraintErr(err error, msg string) error {
	switch e := errors.Cause(err).(type) {
	case sqlite3.Error:
		switch e.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return errors.Wrap(core.ErrInvalidReference, msg)
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return errors.Wrap(core.ErrConflict, msg)
		}
	case *pq.Error:
		switch e.Code {
		case pqForeignKeyViolation:
			return errors.Wrap(core.ErrInvalidReference, msg)
		case pqUniqueViolation:
			return errors.Wrap(core.ErrConflict, msg)
		}
	}
	return errors.Wrap(err, msg)
}
