package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/supabase-community/supabase-go"

	"github.com/elpanzas912/gastitelegram/internal/errs"
	"github.com/elpanzas912/gastitelegram/internal/model"
)

// rpcCurrencySummary es la función del lado del servidor que devuelve los
// totales pre-agregados por moneda para un rango de fechas.
const rpcCurrencySummary = "resumen_por_moneda"

// SupabaseRepository habla con PostgREST. La autenticación la instala el
// refrescador de sesión sobre el mismo cliente antes de cada comando.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(client *supabase.Client) *SupabaseRepository {
	return &SupabaseRepository{client: client}
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	data, _, err := r.client.From("transactions").Insert(transaction, false, "", "representation", "").Execute()
	if err != nil {
		return &errs.UpstreamError{Service: "supabase", Err: fmt.Errorf("no se pudo crear la transacción: %w", err)}
	}

	// El backend completa id y created_at; los tomamos de la respuesta
	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return &errs.UpstreamError{Service: "supabase", Err: fmt.Errorf("no se pudo parsear la transacción creada: %w", err)}
	}
	if len(created) > 0 {
		transaction.ID = created[0].ID
		transaction.CreatedAt = created[0].CreatedAt
	}

	log.WithFields(log.Fields{
		"id":     transaction.ID,
		"amount": transaction.Amount,
	}).Debug("transacción creada")
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := r.client.From("transactions").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10))

	if filter.StartDate != nil {
		query = query.Gte("date", filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		query = query.Lte("date", filter.EndDate.Format(time.RFC3339))
	}

	query = query.Order("date.desc", nil)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, &errs.UpstreamError{Service: "supabase", Err: fmt.Errorf("no se pudieron obtener las transacciones: %w", err)}
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, &errs.UpstreamError{Service: "supabase", Err: fmt.Errorf("no se pudieron parsear las transacciones: %w", err)}
	}
	return transactions, nil
}

func (r *SupabaseRepository) GetCurrencySummary(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.CurrencySummary, error) {
	params := map[string]any{
		"p_user_id": userID,
	}
	if filter.StartDate != nil {
		params["p_date_from"] = filter.StartDate.Format(time.RFC3339)
	}
	if filter.EndDate != nil {
		params["p_date_to"] = filter.EndDate.Format(time.RFC3339)
	}

	// El cliente devuelve el cuerpo como string; vacío significa que la
	// llamada RPC falló
	result := r.client.Rpc(rpcCurrencySummary, "", params)
	if result == "" {
		return nil, &errs.UpstreamError{Service: "supabase", Err: errors.New("el RPC " + rpcCurrencySummary + " no devolvió datos")}
	}

	var summaries []model.CurrencySummary
	if err := json.Unmarshal([]byte(result), &summaries); err != nil {
		return nil, &errs.UpstreamError{Service: "supabase", Err: fmt.Errorf("no se pudo parsear el resumen por moneda: %w", err)}
	}
	return summaries, nil
}
