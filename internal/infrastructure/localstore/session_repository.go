package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	"github.com/SJellen/fetch-rewards/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepository)(nil)

type sessionRecord struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserName   string `json:"userName,omitempty"`
	Email      string `json:"email,omitempty"`
}

// SessionRepository banderas de sesión bajo la clave "session".
type SessionRepository struct {
	store *FileStore
}

func NewSessionRepository(store *FileStore) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Load(ctx context.Context) (entity.Session, error) {
	raw, err := r.store.Get(ctx, KeySession)
	if errors.Is(err, ErrKeyNotFound) {
		return entity.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return entity.Session{}, err
	}
	if err := validate(sessionSchema, raw); err != nil {
		return entity.Session{}, fmt.Errorf("sesión: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return entity.Session{}, fmt.Errorf("sesión: %w: %v", ErrCorrupt, err)
	}
	return entity.Session{LoggedIn: rec.IsLoggedIn, UserName: rec.UserName, Email: rec.Email}, nil
}

func (r *SessionRepository) Save(ctx context.Context, s entity.Session) error {
	raw, err := json.Marshal(sessionRecord{IsLoggedIn: s.LoggedIn, UserName: s.UserName, Email: s.Email})
	if err != nil {
		return fmt.Errorf("sesión: serializar: %w", err)
	}
	return r.store.Put(ctx, KeySession, raw)
}

func (r *SessionRepository) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, KeySession)
}
