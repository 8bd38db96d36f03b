package service

import (
	"context"
	"testing"
	"time"

	"github.com/supabase-community/gotrue-go/types"

	"github.com/elpanzas912/gastitelegram/internal/auth"
	"github.com/elpanzas912/gastitelegram/internal/model"
)

const testUserID int64 = 4242

type fakeRepo struct {
	transactions []model.Transaction
	summaries    []model.CurrencySummary
	createErr    error
	getErr       error
	created      []model.Transaction
}

func (f *fakeRepo) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *transaction)
	return nil
}

func (f *fakeRepo) GetTransactions(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.transactions, nil
}

func (f *fakeRepo) GetCurrencySummary(ctx context.Context, userID int64, filter model.TransactionFilter) ([]model.CurrencySummary, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.summaries, nil
}

type fakeLLM struct {
	expense    *model.Expense
	expenseErr error
	summary    string
	summaryErr error
	filter     *model.QueryFilter
	filterErr  error

	summarizeCalls int
	lastAggregates string
}

func (f *fakeLLM) ParseExpense(ctx context.Context, text string) (*model.Expense, error) {
	if f.expenseErr != nil {
		return nil, f.expenseErr
	}
	expense := *f.expense
	return &expense, nil
}

func (f *fakeLLM) SummarizeSpending(ctx context.Context, aggregates string) (string, error) {
	f.summarizeCalls++
	f.lastAggregates = aggregates
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summary, nil
}

func (f *fakeLLM) ParseQuery(ctx context.Context, question string) (*model.QueryFilter, error) {
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	filter := *f.filter
	return &filter, nil
}

type stubRefresher struct {
	err error
}

func (s *stubRefresher) Refresh(ctx context.Context, refreshToken string) (types.Session, error) {
	if s.err != nil {
		return types.Session{}, s.err
	}
	session := types.Session{}
	session.AccessToken = "acceso"
	session.RefreshToken = refreshToken
	return session, nil
}

type stubStore struct {
	token string
}

func (s *stubStore) Read() string { return s.token }

func (s *stubStore) Write(token string) error {
	s.token = token
	return nil
}

// newTestTracker arma un ExpenseTracker con fakes y reloj fijo.
func newTestTracker(t *testing.T, repo *fakeRepo, llmClient *fakeLLM, refreshErr error) *ExpenseTracker {
	t.Helper()
	authenticator := auth.NewAuthenticator(&stubRefresher{err: refreshErr}, &stubStore{token: "refresh-semilla"})
	tracker := NewExpenseTracker(repo, llmClient, authenticator, testUserID)
	tracker.now = func() time.Time {
		return time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)
	}
	return tracker
}

// tx arma una transacción de prueba; day cuenta desde una fecha base fija.
func tx(id string, day int, amount float64, currency, category, description string) model.Transaction {
	return model.Transaction{
		ID:          id,
		UserID:      testUserID,
		Amount:      amount,
		Description: description,
		Currency:    currency,
		Category:    category,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
	}
}
