package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// queryer es satisfecho por *sql.DB y *sql.Tx, de modo que las lecturas puedan
// participar o no de una transacción
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type txRunner struct {
	db *sql.DB
}

// NewTxRunner crea el ejecutor de transacciones sobre la base de datos
func NewTxRunner(db *sql.DB) domain.TxRunner {
	return &txRunner{db: db}
}

// RunInTx ejecuta fn dentro de una transacción: si fn retorna error se
// revierte todo, si no se confirma
func (r *txRunner) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}
	return nil
}
