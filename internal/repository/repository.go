package repository

import (
	"context"

	"github.com/elpanzas912/gastitelegram/internal/model"
)

// Repository define las operaciones contra el backend de transacciones.
// El bot es un cliente de escritura y lectura directa, sin caché local.
type Repository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error)
	GetCurrencySummary(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.CurrencySummary, error)
}
