package domain

import (
	"context"
	"database/sql"
)

// TxRunner ejecuta una función dentro de una transacción. Si la función
// retorna error se revierte todo; si no, se confirma. Es la frontera de
// atomicidad de cada operación de lectura-modificación sobre una venta
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}
