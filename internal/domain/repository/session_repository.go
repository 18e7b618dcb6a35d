package repository

import (
	"context"

	"github.com/SJellen/fetch-rewards/internal/domain/entity"
)

// SessionRepository persistencia local de las banderas de sesión.
type SessionRepository interface {
	// Load devuelve domain.ErrNotFound si no hay sesión guardada.
	Load(ctx context.Context) (entity.Session, error)
	Save(ctx context.Context, s entity.Session) error
	Delete(ctx context.Context) error
}
