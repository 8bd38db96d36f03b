package main

import (
	"context"

	log "github.com/sirupsen/logrus"
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

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
	if err != nil {
		log.Fatal(err)
	}
	client.Auth = client.Auth.WithCustomGoTrueURL(cfg.SupabaseAuthURL)

	store := tokenstore.New(cfg.TokenFile, cfg.InitialRefreshToken)
	authenticator := auth.NewAuthenticator(auth.NewSupabaseRefresher(client), store)
	repo := repository.NewSupabaseRepository(client)
	llmClient := llm.NewOpenAIClient(cfg.OpenAIKey)

	tracker := service.NewExpenseTracker(repo, llmClient, authenticator, cfg.UserID)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, charts.NewGenerator())
	if err != nil {
		log.Fatal(err)
	}

	log.WithField("user", cfg.UserEmail).Info("bot iniciado")
	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
