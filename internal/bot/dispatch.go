package bot

import "strings"

// route es el destino terminal de un mensaje entrante.
type route int

const (
	routeNone route = iota // vacío o solo espacios: se ignora
	routeHelp
	routeListing
	routeNarrative
	routeQuery
	routeChart
	routeRecord
)

// dispatch decide la ruta por prefijo literal de comando. Devuelve el
// resto del texto cuando la ruta lo necesita (la pregunta de /consulta,
// el texto libre del registro). Un comando desconocido cae al registro
// de gastos, igual que cualquier texto libre.
func dispatch(text string) (route, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return routeNone, ""
	}

	command := trimmed
	rest := ""
	if i := strings.IndexAny(trimmed, " \t\n"); i >= 0 {
		command = trimmed[:i]
		rest = strings.TrimSpace(trimmed[i:])
	}

	switch command {
	case "/start", "/ayuda", "/help":
		return routeHelp, ""
	case "/gastos":
		return routeListing, ""
	case "/resumen":
		return routeNarrative, ""
	case "/consulta":
		return routeQuery, rest
	case "/grafico":
		return routeChart, ""
	default:
		return routeRecord, trimmed
	}
}
