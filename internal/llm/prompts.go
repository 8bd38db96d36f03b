package llm

import (
	"strings"

	"github.com/elpanzas912/gastitelegram/internal/model"
)

const expensePromptHeader = `Sos un asistente que extrae gastos de mensajes en texto libre.
Respondé SIEMPRE con un único objeto JSON, sin texto adicional y sin code fences.

Formato:
{"amount": 123.45, "description": "texto corto", "currency": "USD", "category": "una de la lista"}

Reglas:
- "amount" es el monto como número positivo.
- "description" es el gasto sin el monto ni la moneda.
- "currency" es un código de 3 letras. Si el mensaje menciona pesos,
  pesos argentinos o ARS, usá "ARS". Si no se reconoce la moneda, omití el campo.
- "category" tiene que ser exactamente una de estas:
`

const expensePromptFooter = `
Si el texto NO describe un gasto, respondé {"error": "not_an_expense"}.`

// ExpensePrompt es la instrucción fija para el parseo de gastos, con el
// conjunto cerrado de categorías inyectado.
func ExpensePrompt() string {
	var b strings.Builder
	b.WriteString(expensePromptHeader)
	for _, c := range model.Categories {
		b.WriteString("  - " + c + "\n")
	}
	b.WriteString(expensePromptFooter)
	return b.String()
}

// SummaryPrompt es la instrucción fija para el resumen narrativo. El
// payload del usuario es un bloque de agregados ya calculados; el modelo
// no debe inventar cifras que no estén en ese bloque.
const SummaryPrompt = `Sos un analista financiero personal. Vas a recibir un bloque de
agregados ya calculados (totales por moneda, balance neto y principales
categorías de gasto). Escribí un resumen breve en español, en tono
cercano, con dos o tres sugerencias concretas de ahorro. Usá únicamente
las cifras del bloque, no inventes números. Formato: texto plano con
viñetas simples.`

const queryPromptHeader = `Traducí la pregunta del usuario sobre sus finanzas a un filtro JSON.
Respondé SOLO con el objeto JSON, sin texto adicional.

Formato:
{"date_from": "YYYY-MM-DD", "date_to": "YYYY-MM-DD", "type": "expense|income", "category": "una de la lista"}

Todos los campos son opcionales: omití los que la pregunta no determine.
Categorías permitidas:
`

// QueryPrompt es la instrucción fija para traducir consultas libres.
func QueryPrompt() string {
	var b strings.Builder
	b.WriteString(queryPromptHeader)
	for _, c := range model.Categories {
		b.WriteString("  - " + c + "\n")
	}
	return b.String()
}
