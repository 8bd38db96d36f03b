package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config agrupa toda la configuración del proceso. Se construye una sola
// vez en main y se pasa por referencia: nada lee variables de entorno
// fuera de este paquete.
type Config struct {
	TelegramToken       string `env:"TELEGRAM_TOKEN,required"`
	OpenAIKey           string `env:"OPENAI_API_KEY,required"`
	SupabaseURL         string `env:"SUPABASE_URL,required"`
	SupabaseKey         string `env:"SUPABASE_ANON_KEY,required"`
	SupabaseAuthURL     string `env:"SUPABASE_AUTH_URL"`
	InitialRefreshToken string `env:"SUPABASE_REFRESH_TOKEN,required"`
	UserEmail           string `env:"USER_EMAIL,required"`
	UserID              int64  `env:"USER_ID,required"`
	TokenFile           string `env:"TOKEN_FILE,default=token.json"`
}

// Load lee .env si existe y procesa las variables de entorno.
// Una variable requerida ausente aborta el arranque.
func Load(ctx context.Context) (*Config, error) {
	// .env es opcional; en producción las variables vienen del entorno
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, fmt.Errorf("configuración inválida: %w", err)
	}

	if cfg.SupabaseAuthURL == "" {
		cfg.SupabaseAuthURL = strings.TrimRight(cfg.SupabaseURL, "/") + "/auth/v1"
	}

	return cfg, nil
}
