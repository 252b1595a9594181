package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.NoError(t, wrap("op", nil))
	assert.ErrorIs(t, wrap("get sector", pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, wrap("create personnel", &pgconn.PgError{Code: "23505", ConstraintName: "personal_dni_key"}), ErrConflict)
	assert.ErrorIs(t, wrap("create patrol", &pgconn.PgError{Code: "23503"}), ErrInvalidReference)
	assert.ErrorIs(t, wrap("get sector", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "x"`}), ErrInvalidInput)
	assert.ErrorIs(t, wrap("list patrols", &pgconn.PgError{Code: "22007"}), ErrInvalidInput)
	assert.ErrorIs(t, wrap("list vouchers", &pgconn.PgError{Code: "22008"}), ErrInvalidInput)
	assert.NotErrorIs(t, wrap("list vouchers", &pgconn.PgError{Code: "42P01"}), ErrInvalidInput)

	boom := errors.New("boom")
	err := wrap("list vouchers", boom)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "list vouchers: boom")
}

// execOnly is a DBTX whose Exec reports a fixed command tag.
type execOnly struct {
	tag  pgconn.CommandTag
	err  error
	sql  string
	args []any
}

func (e *execOnly) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (e *execOnly) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (e *execOnly) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql, e.args = sql, args
	return e.tag, e.err
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	t.Parallel()

	db := &execOnly{tag: pgconn.NewCommandTag("DELETE 0")}
	err := NewVehicleStore(db).Delete(context.Background(), "v1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "DELETE FROM vehiculo WHERE id = $1", db.sql)
	assert.Equal(t, []any{"v1"}, db.args)
}

func TestDeleteRow(t *testing.T) {
	t.Parallel()

	db := &execOnly{tag: pgconn.NewCommandTag("DELETE 1")}
	require.NoError(t, NewIncidentStore(db).Delete(context.Background(), "i1"))
}

func TestSetImage(t *testing.T) {
	t.Parallel()

	db := &execOnly{tag: pgconn.NewCommandTag("UPDATE 1")}
	require.NoError(t, NewVoucherStore(db).SetImage(context.Background(), "v1", "https://cdn/x.jpg"))
	assert.Equal(t, []any{"v1", "https://cdn/x.jpg"}, db.args)

	db.err = &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, NewIncidentStore(db).SetImage(context.Background(), "i1", "u"), ErrInvalidReference)
}
