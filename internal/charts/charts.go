package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/elpanzas912/gastitelegram/internal/service"
)

// Generator dibuja los gráficos que acompañan los reportes.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// ExpensePie arma un gráfico de torta con la distribución del gasto por
// categoría para una moneda. Devuelve nil si no hay nada que dibujar.
func (g *Generator) ExpensePie(aggregate service.CurrencyAggregate) ([]byte, error) {
	if aggregate.Expense <= 0 || len(aggregate.TopCategories) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(aggregate.TopCategories))
	for _, cat := range aggregate.TopCategories {
		share := (cat.Amount / aggregate.Expense) * 100
		// las porciones menores al 1% ensucian el gráfico
		if share <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f %s (%.1f%%)", cat.Name, cat.Amount, aggregate.Currency, share),
			Value: cat.Amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Distribución de gastos (" + aggregate.Currency + ")",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("no se pudo renderizar el gráfico de categorías: %w", err)
	}
	return buffer.Bytes(), nil
}
