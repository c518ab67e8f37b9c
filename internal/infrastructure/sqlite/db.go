// Package sqlite adaptador embebido (jmoiron/sqlx + modernc.org/sqlite) de los puertos de
// persistencia. Mismo contrato que el adaptador PostgreSQL; una sola conexión abierta
// serializa las transacciones, lo que reemplaza al SELECT ... FOR UPDATE.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver "sqlite" (Go puro)
)

//go:embed schema.sql
var schemaSQL string

// Querier lo comparten *sqlx.DB y *sqlx.Tx.
type Querier = sqlx.ExtContext

// Open abre (o crea) la base en path. busyTimeout acota la espera por bloqueos del archivo.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sqlx.DB, error) {
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	dsn := "file:" + path + "?" + q.Encode()

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	return db, nil
}

// Migrate aplica el esquema embebido (idempotente).
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
