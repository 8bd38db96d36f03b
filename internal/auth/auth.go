package auth

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"github.com/elpanzas912/gastitelegram/internal/errs"
)

// Refresher intercambia un refresh token por una sesión nueva. El token
// de entrada puede quedar invalidado por el backend después del canje.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (types.Session, error)
}

// TokenStore es el slot durable donde vive el refresh token vigente.
type TokenStore interface {
	Read() string
	Write(token string) error
}

// SupabaseRefresher delega el canje en el cliente de Supabase, que además
// instala el access token resultante en el cliente PostgREST: las llamadas
// posteriores del repositorio ya salen autenticadas como el usuario.
type SupabaseRefresher struct {
	client *supabase.Client
}

func NewSupabaseRefresher(client *supabase.Client) *SupabaseRefresher {
	return &SupabaseRefresher{client: client}
}

func (r *SupabaseRefresher) Refresh(ctx context.Context, refreshToken string) (types.Session, error) {
	session, err := r.client.RefreshToken(refreshToken)
	if err != nil {
		// Fatal para el comando en curso, sin reintentos: un refresh
		// token es de un solo uso y reintentar puede invalidar estado.
		return types.Session{}, &errs.AuthError{Err: err}
	}
	return session, nil
}

// Authenticator concentra la secuencia que antes repetía cada handler:
// leer el token, canjearlo, persistir la rotación y recién ahí ejecutar
// la acción que necesita la sesión.
type Authenticator struct {
	refresher Refresher
	store     TokenStore
}

func NewAuthenticator(refresher Refresher, store TokenStore) *Authenticator {
	return &Authenticator{refresher: refresher, store: store}
}

// WithSession refresca la sesión y ejecuta fn. El refresh token nuevo se
// persiste solo cuando difiere del usado: el backend invalida los tokens
// superados, así que el valor local tiene que pisarse antes del próximo
// uso. Un fallo de escritura se loguea y no aborta el comando.
func (a *Authenticator) WithSession(ctx context.Context, fn func(ctx context.Context) error) error {
	current := a.store.Read()

	session, err := a.refresher.Refresh(ctx, current)
	if err != nil {
		return err
	}

	if session.RefreshToken != "" && session.RefreshToken != current {
		if werr := a.store.Write(session.RefreshToken); werr != nil {
			log.WithError(werr).Error("no se pudo persistir el refresh token rotado")
		}
	}

	return fn(ctx)
}
