package service

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/elpanzas912/gastitelegram/internal/auth"
	"github.com/elpanzas912/gastitelegram/internal/llm"
	"github.com/elpanzas912/gastitelegram/internal/model"
	"github.com/elpanzas912/gastitelegram/internal/repository"
)

// historyFloor es el piso histórico fijo de las ventanas de consulta.
var historyFloor = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ExpenseTracker concentra los flujos del bot: registrar un gasto y
// producir los distintos reportes. Toda llamada al backend pasa por el
// autenticador, que refresca la sesión y persiste la rotación del token.
type ExpenseTracker struct {
	repo   repository.Repository
	llm    llm.Client
	auth   *auth.Authenticator
	userID int64
	now    func() time.Time
}

func NewExpenseTracker(repo repository.Repository, llmClient llm.Client, authenticator *auth.Authenticator, userID int64) *ExpenseTracker {
	return &ExpenseTracker{
		repo:   repo,
		llm:    llmClient,
		auth:   authenticator,
		userID: userID,
		now:    time.Now,
	}
}

// RecordExpense convierte texto libre en una transacción y la envía al
// backend. O se crea exactamente una transacción con monto negativo, o
// ninguna: cualquier fallo previo al envío corta el flujo sin efectos.
func (s *ExpenseTracker) RecordExpense(ctx context.Context, text string) (*model.Transaction, error) {
	expense, err := s.llm.ParseExpense(ctx, text)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	transaction := &model.Transaction{
		UserID:      s.userID,
		Amount:      -expense.Amount, // convención: los gastos son negativos
		Description: expense.Description,
		Currency:    NormalizeCurrency(expense.Currency, text),
		Category:    normalizeCategory(expense.Category),
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	transaction.GenerateID()

	err = s.auth.WithSession(ctx, func(ctx context.Context) error {
		return s.repo.CreateTransaction(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"amount":   transaction.Amount,
		"currency": transaction.Currency,
		"category": transaction.Category,
	}).Info("gasto registrado")
	return transaction, nil
}

// NormalizeCurrency aplica las reglas de moneda del registro: el código
// se lleva a mayúsculas, el vacío cae a USD salvo que el texto original
// tenga señas de pesos argentinos.
func NormalizeCurrency(raw, originalText string) string {
	currency := strings.ToUpper(strings.TrimSpace(raw))
	if currency != "" {
		return currency
	}
	if hasPesoCue(originalText) {
		return "ARS"
	}
	return "USD"
}

// hasPesoCue detecta menciones de pesos argentinos en el texto original.
func hasPesoCue(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "peso") {
		return true
	}
	for _, word := range strings.Fields(lower) {
		if word == "ars" {
			return true
		}
	}
	return false
}

func normalizeCategory(category string) string {
	if category == "" {
		return "📦 Otros"
	}
	return category
}
