package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"bakery/internal/adapters/out/postgres/pgerrs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "reviews_order_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"matching constraint", dup, "reviews_order_key", true},
		{"wrapped", fmt.Errorf("insert: %w", dup), "reviews_order_key", true},
		{"any constraint", dup, "", true},
		{"other constraint", dup, "users_email_key", false},
		{"other code", &pgconn.PgError{Code: "23503"}, "", false},
		{"plain error", errors.New("boom"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerrs.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
