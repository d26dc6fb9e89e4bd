package sqlxrepos

import (
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/jamespares/chinaprof/core"
)

var errNotFound = core.NewNotFoundError("thing not found")

func Test_trapConnErr(t *testing.T) {
	assert.NoError(t, trapConnErr(nil))
	assert.False(t, core.IsShutdown(trapConnErr(sql.ErrNoRows)))

	err := trapConnErr(errors.Wrap(sql.ErrConnDone, "querying"))
	assert.True(t, core.IsShutdown(err))
	assert.True(t, core.IsShutdown(errors.Wrap(err, "finding thing")))
}

func Test_trapNoRowsErr(t *testing.T) {
	assert.Equal(t, errNotFound, trapNoRowsErr(sql.ErrNoRows, errNotFound, "finding thing"))

	err := trapNoRowsErr(sql.ErrTxDone, errNotFound, "finding thing")
	assert.Equal(t, sql.ErrTxDone, errors.Cause(err))
	assert.Equal(t, "finding thing: "+sql.ErrTxDone.Error(), err.Error())
}

func Test_trapConstraintErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "sqlite foreign key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, want: core.ErrInvalidReference},
		{name: "sqlite unique", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, want: core.ErrConflict},
		{name: "sqlite primary key", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, want: core.ErrConflict},
		{name: "postgres foreign key", err: &pq.Error{Code: pqForeignKeyViolation}, want: core.ErrInvalidReference},
		{name: "postgres unique", err: &pq.Error{Code: pqUniqueViolation}, want: core.ErrConflict},
		{name: "other", err: sql.ErrTxDone, want: sql.ErrTxDone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Cause(trapConstraintErr(tt.err, "saving thing")))
		})
	}
}
