package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/elpanzas912/gastitelegram/internal/errs"
	"github.com/elpanzas912/gastitelegram/internal/model"
)

// listingLimit es la cantidad máxima de movimientos renderizados.
const listingLimit = 10

// Mensajes literales de los caminos vacíos y de disculpa.
const (
	MsgNoExpenses       = "No hay gastos recientes. 📭"
	MsgNothingToAnalyze = "Todavía no hay movimientos para analizar. 📭"
	MsgQueryApology     = "Perdón, no pude entender la consulta. Probá reformularla, por ejemplo: \"cuánto gasté en comida este mes\"."
)

// fetchWindow descarga la ventana fija de transacciones (piso histórico
// hasta ahora) con una sesión fresca.
func (s *ExpenseTracker) fetchWindow(ctx context.Context) ([]model.Transaction, error) {
	now := s.now().UTC()
	filter := model.TransactionFilter{StartDate: &historyFloor, EndDate: &now}

	var transactions []model.Transaction
	err := s.auth.WithSession(ctx, func(ctx context.Context) error {
		var err error
		transactions, err = s.repo.GetTransactions(ctx, s.userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListingReport arma el listado de movimientos recientes junto con los
// totales por moneda pre-agregados por el backend.
func (s *ExpenseTracker) ListingReport(ctx context.Context) (string, error) {
	now := s.now().UTC()
	filter := model.TransactionFilter{StartDate: &historyFloor, EndDate: &now}

	var transactions []model.Transaction
	var summaries []model.CurrencySummary
	err := s.auth.WithSession(ctx, func(ctx context.Context) error {
		var err error
		transactions, err = s.repo.GetTransactions(ctx, s.userID, filter)
		if err != nil {
			return err
		}
		summaries, err = s.repo.GetCurrencySummary(ctx, s.userID, filter)
		return err
	})
	if err != nil {
		return "", err
	}

	return FormatListing(transactions, summaries), nil
}

// NarrativeReport calcula los agregados localmente y le pide al LLM la
// prosa. Con cero movimientos corta antes de tocar el modelo.
func (s *ExpenseTracker) NarrativeReport(ctx context.Context) (string, error) {
	transactions, err := s.fetchWindow(ctx)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return MsgNothingToAnalyze, nil
	}

	block := AggregateBlock(Aggregate(transactions))
	return s.llm.SummarizeSpending(ctx, block)
}

// QueryReport traduce la pregunta a un filtro estructurado y lo aplica
// del lado del cliente sobre la ventana descargada. Una consulta que no
// se puede traducir devuelve una disculpa fija, no un error.
func (s *ExpenseTracker) QueryReport(ctx context.Context, question string) (string, error) {
	filter, err := s.llm.ParseQuery(ctx, question)
	if err != nil {
		var parseErr *errs.ParseError
		if errors.As(err, &parseErr) {
			return MsgQueryApology, nil
		}
		return "", err
	}

	transactions, err := s.fetchWindow(ctx)
	if err != nil {
		return "", err
	}

	matched := ApplyQueryFilter(transactions, filter)
	if len(matched) == 0 {
		return "No encontré movimientos que coincidan con la consulta. 🔍", nil
	}
	return FormatListing(matched, localSummaries(matched)), nil
}

// SpendingAggregates expone los agregados deterministas de la ventana,
// para los reportes que se dibujan en vez de narrarse.
func (s *ExpenseTracker) SpendingAggregates(ctx context.Context) ([]CurrencyAggregate, error) {
	transactions, err := s.fetchWindow(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(transactions), nil
}

// ApplyQueryFilter filtra la lista en memoria según el filtro derivado de
// la consulta. Las fechas vienen ya validadas con formato YYYY-MM-DD.
func ApplyQueryFilter(transactions []model.Transaction, filter *model.QueryFilter) []model.Transaction {
	var from, to time.Time
	if filter.DateFrom != "" {
		from, _ = time.Parse("2006-01-02", filter.DateFrom)
	}
	if filter.DateTo != "" {
		to, _ = time.Parse("2006-01-02", filter.DateTo)
		// el límite superior incluye el día completo
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	matched := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !from.IsZero() && t.Date.Before(from) {
			continue
		}
		if !to.IsZero() && t.Date.After(to) {
			continue
		}
		if filter.Type == "expense" && t.Amount >= 0 {
			continue
		}
		if filter.Type == "income" && t.Amount < 0 {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

// FormatListing renderiza los movimientos más recientes en orden
// descendente por fecha, con nota de desborde y totales por moneda. Es
// pura: misma entrada, misma salida byte a byte.
func FormatListing(transactions []model.Transaction, summaries []model.CurrencySummary) string {
	if len(transactions) == 0 {
		return MsgNoExpenses
	}

	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	var b strings.Builder
	b.WriteString("🧾 Últimos movimientos:\n\n")

	shown := sorted
	if len(shown) > listingLimit {
		shown = shown[:listingLimit]
	}
	for _, t := range shown {
		fmt.Fprintf(&b, "• %s  %s — %.2f %s\n", t.Date.Format("02/01"), t.Description, t.Amount, t.Currency)
	}
	if rest := len(sorted) - listingLimit; rest > 0 {
		fmt.Fprintf(&b, "… y %d más\n", rest)
	}

	if len(summaries) > 0 {
		sortedSums := make([]model.CurrencySummary, len(summaries))
		copy(sortedSums, summaries)
		sort.Slice(sortedSums, func(i, j int) bool {
			return sortedSums[i].Currency < sortedSums[j].Currency
		})

		b.WriteString("\n💱 Totales por moneda:\n")
		for _, sum := range sortedSums {
			fmt.Fprintf(&b, "%s: gastos %.2f, ingresos %.2f\n", sum.Currency, sum.TotalExpense, sum.TotalIncome)
		}
	}

	return b.String()
}

// localSummaries calcula los totales por moneda sobre una lista ya
// filtrada en memoria, donde el resumen del servidor no aplica.
func localSummaries(transactions []model.Transaction) []model.CurrencySummary {
	byCurrency := make(map[string]*model.CurrencySummary)
	for _, t := range transactions {
		sum, ok := byCurrency[t.Currency]
		if !ok {
			sum = &model.CurrencySummary{Currency: t.Currency}
			byCurrency[t.Currency] = sum
		}
		if t.Amount >= 0 {
			sum.TotalIncome += t.Amount
		} else {
			sum.TotalExpense += -t.Amount
		}
		sum.Count++
	}

	summaries := make([]model.CurrencySummary, 0, len(byCurrency))
	for _, sum := range byCurrency {
		summaries = append(summaries, *sum)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Currency < summaries[j].Currency
	})
	return summaries
}
