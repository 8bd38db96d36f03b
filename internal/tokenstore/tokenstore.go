package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// record es lo único que se persiste: el refresh token vigente y cuándo
// se escribió.
type record struct {
	RefreshToken string    `json:"refresh_token"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store guarda el refresh token vigente en un archivo JSON. Un solo slot,
// la última escritura gana. Si el archivo no existe o no se puede leer,
// Read degrada al valor semilla de la configuración en vez de fallar.
type Store struct {
	path string
	seed string
}

func New(path, seed string) *Store {
	return &Store{path: path, seed: seed}
}

// Read devuelve el último token escrito, o la semilla si nunca se
// escribió nada o el archivo está dañado.
func (s *Store) Read() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("no se pudo leer el archivo de token, usando semilla")
		}
		return s.seed
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.RefreshToken == "" {
		log.Warn("archivo de token dañado, usando semilla")
		return s.seed
	}
	return rec.RefreshToken
}

// Write persiste el token incondicionalmente, pisando cualquier valor
// anterior. Un fallo aquí se reporta pero no debe abortar el comando en
// curso: el access token recién emitido sigue siendo usable.
func (s *Store) Write(token string) error {
	rec := record{
		RefreshToken: token,
		UpdatedAt:    time.Now().UTC(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("no se pudo serializar el token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("no se pudo escribir el archivo de token: %w", err)
	}
	return nil
}
