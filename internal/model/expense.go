package model

// Expense es el resultado transitorio del parseo por LLM de un mensaje.
// Nunca se persiste parcialmente: o todos los campos están presentes o
// el registro se descarta.
type Expense struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
}

// QueryFilter es el filtro estructurado que el LLM deriva de una consulta
// en lenguaje natural. Se aplica del lado del cliente sobre la ventana
// de transacciones ya descargada.
type QueryFilter struct {
	DateFrom string `json:"date_from"` // YYYY-MM-DD, vacío = sin límite
	DateTo   string `json:"date_to"`
	Type     string `json:"type"` // "expense", "income" o vacío
	Category string `json:"category"`
}
