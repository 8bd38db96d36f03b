package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReturnsSeedWhenFileMissing(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "token.json"), "semilla-inicial")

	assert.Equal(t, "semilla-inicial", store.Read())
}

func TestWriteThenRead(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "token.json"), "semilla-inicial")

	require.NoError(t, store.Write("token-rotado"))
	assert.Equal(t, "token-rotado", store.Read())
}

func TestLastWriteWins(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "token.json"), "semilla-inicial")

	require.NoError(t, store.Write("primero"))
	require.NoError(t, store.Write("segundo"))
	require.NoError(t, store.Write("tercero"))

	assert.Equal(t, "tercero", store.Read())
}

func TestReadReturnsSeedWhenFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0600))

	store := New(path, "semilla-inicial")
	assert.Equal(t, "semilla-inicial", store.Read())
}

func TestReadReturnsSeedWhenTokenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"refresh_token": ""}`), 0600))

	store := New(path, "semilla-inicial")
	assert.Equal(t, "semilla-inicial", store.Read())
}

func TestSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	first := New(path, "semilla-inicial")
	require.NoError(t, first.Write("token-persistido"))

	// un proceso nuevo con la misma ruta ve el último valor escrito
	second := New(path, "otra-semilla")
	assert.Equal(t, "token-persistido", second.Read())
}
