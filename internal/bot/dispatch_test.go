package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		route   route
		payload string
	}{
		{"vacío se ignora", "", routeNone, ""},
		{"solo espacios se ignora", "   \n\t ", routeNone, ""},
		{"start", "/start", routeHelp, ""},
		{"ayuda", "/ayuda", routeHelp, ""},
		{"help", "/help", routeHelp, ""},
		{"gastos", "/gastos", routeListing, ""},
		{"resumen", "/resumen", routeNarrative, ""},
		{"grafico", "/grafico", routeChart, ""},
		{"consulta con pregunta", "/consulta cuánto gasté en comida", routeQuery, "cuánto gasté en comida"},
		{"consulta sin pregunta", "/consulta", routeQuery, ""},
		{"texto libre va al registro", "Cena con amigos 45.50 usd", routeRecord, "Cena con amigos 45.50 usd"},
		{"comando desconocido cae al registro", "/loquesea 123", routeRecord, "/loquesea 123"},
		{"texto con espacios alrededor", "  Taxi 1200 pesos  ", routeRecord, "Taxi 1200 pesos"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotRoute, gotPayload := dispatch(tc.text)
			assert.Equal(t, tc.route, gotRoute)
			assert.Equal(t, tc.payload, gotPayload)
		})
	}
}
