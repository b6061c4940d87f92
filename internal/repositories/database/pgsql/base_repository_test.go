package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/resale_ledger/internal/apperrors"
	"github.com/SscSPs/resale_ledger/internal/core/domain"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"serialization failure", &pgconn.PgError{Code: sqlStateSerializationFailure}, apperrors.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: sqlStateDeadlockDetected}, apperrors.ErrConflict},
		{"duplicate reversal", &pgconn.PgError{Code: sqlStateUniqueViolation}, apperrors.ErrConflict},
		{"unknown account", &pgconn.PgError{Code: sqlStateForeignKeyViolation}, apperrors.ErrValidation},
		{"check constraint", &pgconn.PgError{Code: sqlStateCheckViolation}, apperrors.ErrValidation},
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"other", errors.New("connection refused"), apperrors.ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapPgError(tc.err, "op"), tc.want)
		})
	}
	assert.NoError(t, mapPgError(nil, "op"))
}

func TestPeriodBounds(t *testing.T) {
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	from, gotTo := periodBounds(domain.Period{To: to})
	assert.Nil(t, from)
	assert.Equal(t, to, gotTo)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	from, _ = periodBounds(domain.Period{From: start, To: to})
	if assert.NotNil(t, from) {
		assert.Equal(t, start, *from)
	}
}
