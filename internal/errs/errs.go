package errs

import (
	"errors"
	"fmt"
)

// ErrNotAnExpense indica que el modelo marcó el texto como "no es un gasto".
// No es un fallo del sistema, es el camino negativo normal.
var ErrNotAnExpense = errors.New("el texto no describe un gasto")

// AuthError representa un rechazo del intercambio de refresh token.
// Fatal para el comando en curso, sin reintentos: el token es rotativo
// y reintentar a ciegas puede invalidar el estado guardado.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: fallo al refrescar el token: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError representa una respuesta no exitosa del backend o del LLM.
type UpstreamError struct {
	Service string // "supabase" u "openai"
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError indica que la salida del LLM no es JSON válido o no cumple
// el esquema esperado. Fallo blando: se le pide al usuario que reformule.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
