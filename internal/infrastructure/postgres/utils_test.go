package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, domain.ErrConcurrencyConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConcurrencyConflict},
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrConcurrencyConflict},
		{"único", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"check", &pgconn.PgError{Code: "23514"}, domain.ErrStorageFailure},
		{"red", errors.New("connection refused"), domain.ErrStorageFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("op", tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err, "conserva la causa original")
		})
	}
	assert.NoError(t, classify("op", nil))
}
