package model

import (
	"time"

	"github.com/google/uuid"
)

// Transaction es el registro que posee el backend. El bot es un cliente
// de solo paso: escribe y lee, nunca cachea. Convención de signo: los
// gastos son montos negativos.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// GenerateID genera un nuevo UUID para la transacción si aún no tiene uno.
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// TransactionFilter acota la ventana de transacciones a descargar.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// CurrencySummary es una fila del resumen pre-agregado por moneda que
// devuelve el RPC del backend.
type CurrencySummary struct {
	Currency     string  `json:"currency"`
	TotalExpense float64 `json:"total_expense"`
	TotalIncome  float64 `json:"total_income"`
	Count        int     `json:"count"`
}
