package main

import (
	"context"

	"github.com/supabase-community/supabase-go"

	"github.com/elpanzas912/gastitelegram/internal/auth"
	"github.com/elpanzas912/gastitelegram/internal/bot"
	"github.com/elpanzas912/gastitelegram/internal/charts"
	"github.com/elpanzas912/gastitelegram/internal/config"
	"github.com/elpanzas912/gastitelegram/internal/llm"
	"github.com/elpanzas912/gastitelegram/internal/repository"
	"github.com/elpanzas912/gastitelegram/internal/service"
	"github.com/elpanzas912/gastitelegram/internal/tokenstore"
)

// Request es el pedido entrante del API Gateway.
type Request struct {
	Body string `json:"body"`
}

// Response es la respuesta para el API Gateway.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler atiende un update de Telegram entregado por webhook. Cada
// invocación procesa un solo mensaje de punta a punta.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return errorResponse(err)
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return errorResponse(err)
	}
	client.Auth = client.Auth.WithCustomGoTrueURL(cfg.SupabaseAuthURL)

	store := tokenstore.New(cfg.TokenFile, cfg.InitialRefreshToken)
	authenticator := auth.NewAuthenticator(auth.NewSupabaseRefresher(client), store)
	repo := repository.NewSupabaseRepository(client)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIKey)

	tracker := service.NewExpenseTracker(repo, llmClient, authenticator, cfg.UserID)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, charts.NewGenerator())
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// punto de entrada para pruebas locales
}
