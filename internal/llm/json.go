package llm

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/elpanzas912/gastitelegram/internal/errs"
	"github.com/elpanzas912/gastitelegram/internal/model"
)

// ExtractJSON recorta marcas de code fence y extrae el primer objeto JSON
// balanceado del texto. Los modelos suelen envolver la respuesta en
// ```json ... ``` aunque se les pida JSON puro.
func ExtractJSON(text string) (string, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// expensePayload es la forma cruda que promete el prompt de parseo.
type expensePayload struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Error       string  `json:"error"`
}

// DecodeExpense valida la salida del modelo contra el esquema estricto:
// monto positivo, descripción no vacía y categoría dentro del conjunto
// cerrado. Cualquier desvío es un ParseError; un campo "error" del propio
// modelo es el camino negativo normal, no un fallo del sistema.
func DecodeExpense(content string) (*model.Expense, error) {
	raw, ok := ExtractJSON(content)
	if !ok {
		return nil, &errs.ParseError{Reason: "la respuesta no contiene JSON"}
	}

	var payload expensePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &errs.ParseError{Reason: "JSON inválido", Err: err}
	}

	if payload.Error != "" {
		return nil, errs.ErrNotAnExpense
	}
	if payload.Amount <= 0 {
		return nil, &errs.ParseError{Reason: "falta el monto o no es positivo"}
	}
	if strings.TrimSpace(payload.Description) == "" {
		return nil, &errs.ParseError{Reason: "falta la descripción"}
	}
	if payload.Category != "" && !model.ValidCategory(payload.Category) {
		return nil, &errs.ParseError{Reason: "categoría fuera del conjunto permitido: " + payload.Category}
	}

	return &model.Expense{
		Amount:      payload.Amount,
		Description: strings.TrimSpace(payload.Description),
		Currency:    payload.Currency,
		Category:    payload.Category,
	}, nil
}

// DecodeQuery valida el filtro estructurado derivado de una consulta.
func DecodeQuery(content string) (*model.QueryFilter, error) {
	raw, ok := ExtractJSON(content)
	if !ok {
		return nil, &errs.ParseError{Reason: "la respuesta no contiene JSON"}
	}

	var filter model.QueryFilter
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, &errs.ParseError{Reason: "JSON inválido", Err: err}
	}

	for _, d := range []string{filter.DateFrom, filter.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, &errs.ParseError{Reason: "fecha inválida: " + d, Err: err}
		}
	}
	switch filter.Type {
	case "", "expense", "income":
	default:
		return nil, &errs.ParseError{Reason: "tipo desconocido: " + filter.Type}
	}
	if filter.Category != "" && !model.ValidCategory(filter.Category) {
		return nil, &errs.ParseError{Reason: "categoría fuera del conjunto permitido: " + filter.Category}
	}

	return &filter, nil
}
