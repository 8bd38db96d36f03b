package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elpanzas912/gastitelegram/internal/model"
)

// CategoryTotal es el gasto acumulado de una categoría.
type CategoryTotal struct {
	Name   string
	Amount float64
}

// CurrencyAggregate son los agregados deterministas de una moneda. El
// resumen narrativo se construye solo a partir de estos valores, nunca de
// las transacciones crudas, para que el modelo no pueda inventar cifras.
type CurrencyAggregate struct {
	Currency      string
	Income        float64
	Expense       float64
	Net           float64
	TopCategories []CategoryTotal
}

// topCategoriesLimit acota las categorías listadas por moneda.
const topCategoriesLimit = 5

// Aggregate calcula totales de ingreso y gasto, balance neto y las cinco
// categorías con mayor gasto absoluto, por moneda. La salida es estable:
// monedas ordenadas alfabéticamente, categorías por monto descendente con
// desempate por nombre.
func Aggregate(transactions []model.Transaction) []CurrencyAggregate {
	type acc struct {
		income     float64
		expense    float64
		byCategory map[string]float64
	}
	byCurrency := make(map[string]*acc)

	for _, t := range transactions {
		a, ok := byCurrency[t.Currency]
		if !ok {
			a = &acc{byCategory: make(map[string]float64)}
			byCurrency[t.Currency] = a
		}
		if t.Amount >= 0 {
			a.income += t.Amount
		} else {
			a.expense += -t.Amount
			a.byCategory[t.Category] += -t.Amount
		}
	}

	currencies := make([]string, 0, len(byCurrency))
	for cur := range byCurrency {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)

	aggregates := make([]CurrencyAggregate, 0, len(currencies))
	for _, cur := range currencies {
		a := byCurrency[cur]

		categories := make([]CategoryTotal, 0, len(a.byCategory))
		for name, amount := range a.byCategory {
			categories = append(categories, CategoryTotal{Name: name, Amount: amount})
		}
		sort.Slice(categories, func(i, j int) bool {
			if categories[i].Amount != categories[j].Amount {
				return categories[i].Amount > categories[j].Amount
			}
			return categories[i].Name < categories[j].Name
		})
		if len(categories) > topCategoriesLimit {
			categories = categories[:topCategoriesLimit]
		}

		aggregates = append(aggregates, CurrencyAggregate{
			Currency:      cur,
			Income:        a.income,
			Expense:       a.expense,
			Net:           a.income - a.expense,
			TopCategories: categories,
		})
	}
	return aggregates
}

// AggregateBlock serializa los agregados como bloque de texto plano, la
// única entrada que recibe el LLM en modo narrativo.
func AggregateBlock(aggregates []CurrencyAggregate) string {
	var b strings.Builder
	for i, agg := range aggregates {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Moneda: %s\n", agg.Currency)
		fmt.Fprintf(&b, "Ingresos: %.2f\n", agg.Income)
		fmt.Fprintf(&b, "Gastos: %.2f\n", agg.Expense)
		fmt.Fprintf(&b, "Balance neto: %.2f\n", agg.Net)
		if len(agg.TopCategories) > 0 {
			b.WriteString("Principales categorías de gasto:\n")
			for _, cat := range agg.TopCategories {
				fmt.Fprintf(&b, "  %s: %.2f\n", cat.Name, cat.Amount)
			}
		}
	}
	return b.String()
}
