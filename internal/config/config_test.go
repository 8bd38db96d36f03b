package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("SUPABASE_REFRESH_TOKEN", "refresh-semilla")
	t.Setenv("USER_EMAIL", "yo@example.com")
	t.Setenv("USER_ID", "4242")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tg-token", cfg.TelegramToken)
	assert.Equal(t, int64(4242), cfg.UserID)
	assert.Equal(t, "token.json", cfg.TokenFile)
	// la URL de auth se deriva de la base cuando no viene dada
	assert.Equal(t, "https://proj.supabase.co/auth/v1", cfg.SupabaseAuthURL)
}

func TestLoadRespectsExplicitAuthURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUPABASE_AUTH_URL", "https://auth.propia.dev")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://auth.propia.dev", cfg.SupabaseAuthURL)
}

func TestLoadFailsWithoutRequiredVars(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv ya registró la restauración; acá la sacamos de verdad
	require.NoError(t, os.Unsetenv("TELEGRAM_TOKEN"))

	_, err := Load(context.Background())
	assert.Error(t, err)
}
