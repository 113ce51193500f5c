package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestRun(t *testing.T) {
	t.Run("stores join the transaction and it commits", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE obligations").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := Run(context.Background(), db, nil, func(ctx context.Context) error {
			_, isTx := Using(ctx, db).(*sql.Tx)
			assert.True(t, isTx)
			_, err := Using(ctx, db).ExecContext(ctx, "UPDATE obligations SET last_reminder_at = now()")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("callback error rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		sentinel := errors.New("ledger write failed")
		err := Run(context.Background(), db, nil, func(context.Context) error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested run reuses the outer transaction", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := Run(context.Background(), db, nil, func(ctx context.Context) error {
			return Run(ctx, db, nil, func(context.Context) error { return nil })
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is wrapped", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		err := Run(context.Background(), db, nil, func(context.Context) error {
			t.Fatal("callback must not run")
			return nil
		})
		assert.ErrorContains(t, err, "begin: too many connections")
	})
}

func TestUsingWithoutTransaction(t *testing.T) {
	db, _ := newMock(t)
	assert.Same(t, db, Using(context.Background(), db))
}

func TestReadSnapshot(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	err := ReadSnapshot(db)(context.Background(), func(ctx context.Context) error {
		var n int
		return Using(ctx, db).QueryRowContext(ctx, "SELECT 1").Scan(&n)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
