package llm

import (
	"context"

	"github.com/elpanzas912/gastitelegram/internal/model"
)

// Client es la interfaz hacia el modelo de lenguaje. Tres operaciones,
// todas de una sola vuelta: texto adentro, texto o JSON afuera.
type Client interface {
	// ParseExpense convierte texto libre en un gasto estructurado.
	// Devuelve errs.ErrNotAnExpense si el modelo indica que el texto
	// no describe un gasto, o *errs.ParseError si la salida no cumple
	// el esquema.
	ParseExpense(ctx context.Context, text string) (*model.Expense, error)

	// SummarizeSpending produce un resumen en prosa a partir de un
	// bloque de agregados ya calculados localmente. Nunca recibe
	// transacciones crudas: cada cifra del relato tiene que poder
	// rastrearse a un valor calculado por nosotros.
	SummarizeSpending(ctx context.Context, aggregates string) (string, error)

	// ParseQuery traduce una pregunta en lenguaje natural a un filtro
	// estructurado que luego se aplica del lado del cliente.
	ParseQuery(ctx context.Context, question string) (*model.QueryFilter, error)
}
