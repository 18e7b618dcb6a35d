package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/application/ports"
	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	"github.com/SJellen/fetch-rewards/internal/domain/repository"
)

// FavoritesLifecycle lo que la sesión necesita del almacén de favoritos.
type FavoritesLifecycle interface {
	Reload(ctx context.Context)
	Clear(ctx context.Context)
	Len() int
}

// SearchResetter devuelve la búsqueda a su estado inicial.
type SearchResetter interface {
	Reset()
}

// SessionUseCase frontera de sesión: handshake remoto y banderas persistidas localmente.
type SessionUseCase struct {
	gateway   ports.SessionGateway
	sessions  repository.SessionRepository
	favorites FavoritesLifecycle
	search    SearchResetter
	log       zerolog.Logger
}

// NewSessionUseCase construye el caso de uso de sesión.
func NewSessionUseCase(gateway ports.SessionGateway, sessions repository.SessionRepository, favorites FavoritesLifecycle, search SearchResetter, log zerolog.Logger) *SessionUseCase {
	return &SessionUseCase{gateway: gateway, sessions: sessions, favorites: favorites, search: search, log: log}
}

// Login abre la sesión remota (cookie) y guarda las banderas. Los favoritos se recargan
// desde lo persistido y la búsqueda vuelve al estado inicial.
func (uc *SessionUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name y email son requeridos", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}

	if err := uc.gateway.Login(ctx, name, email); err != nil {
		return nil, fmt.Errorf("login remoto: %w", err)
	}

	session := entity.Session{LoggedIn: true, UserName: name, Email: email}
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.log.Error().Err(err).Msg("guardar sesión local")
	}
	uc.favorites.Reload(ctx)
	uc.search.Reset()

	uc.log.Info().Str("user", name).Msg("sesión iniciada")
	return uc.toResponse(session), nil
}

// Logout cierra la sesión remota (mejor esfuerzo), vacía favoritos, reinicia la búsqueda
// y borra las banderas locales. Nunca falla.
func (uc *SessionUseCase) Logout(ctx context.Context) *dto.SessionResponse {
	if err := uc.gateway.Logout(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("logout remoto falló, se cierra la sesión local")
	}
	uc.favorites.Clear(ctx)
	uc.search.Reset()
	if err := uc.sessions.Delete(ctx); err != nil {
		uc.log.Error().Err(err).Msg("borrar sesión local")
	}

	uc.log.Info().Msg("sesión cerrada")
	return uc.toResponse(entity.Session{})
}

// Current devuelve la sesión persistida. ErrNotLoggedIn si no hay una activa.
func (uc *SessionUseCase) Current(ctx context.Context) (*dto.SessionResponse, error) {
	session, err := uc.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Msg("sesión persistida ilegible")
		}
		return nil, domain.ErrNotLoggedIn
	}
	if !session.LoggedIn {
		return nil, domain.ErrNotLoggedIn
	}
	return uc.toResponse(session), nil
}

func (uc *SessionUseCase) toResponse(s entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		IsLoggedIn: s.LoggedIn,
		UserName:   s.UserName,
		Email:      s.Email,
		Favorites:  uc.favorites.Len(),
	}
}
