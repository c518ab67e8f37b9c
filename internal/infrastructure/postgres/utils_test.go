package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

func TestWrapErr(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		duplicate bool
		transient bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, false, true},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, false, true},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), false, true},
		{"check violation", &pgconn.PgError{Code: "23514"}, false, false},
		{"plain", errors.New("boom"), false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := wrapErr("op", tc.err)
			assert.Equal(t, tc.duplicate, errors.Is(err, domain.ErrDuplicate))
			assert.Equal(t, tc.transient, errors.Is(err, domain.ErrTransient))
			assert.Contains(t, err.Error(), "op")
		})
	}
}
