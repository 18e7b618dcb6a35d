package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SJellen/fetch-rewards/internal/domain/repository"
)

var _ repository.FavoritesRepository = (*FavoritesRepository)(nil)

// FavoritesRepository guarda los favoritos como array JSON bajo la clave "favorites".
type FavoritesRepository struct {
	store *FileStore
}

func NewFavoritesRepository(store *FileStore) *FavoritesRepository {
	return &FavoritesRepository{store: store}
}

// Load sin clave previa devuelve vacío; duplicados se descartan conservando la primera aparición.
func (r *FavoritesRepository) Load(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, KeyFavorites)
	if errors.Is(err, ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := validate(favoritesSchema, raw); err != nil {
		return nil, fmt.Errorf("favoritos: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("favoritos: %w: %v", ErrCorrupt, err)
	}
	return dedupe(ids), nil
}

func (r *FavoritesRepository) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("favoritos: serializar: %w", err)
	}
	return r.store.Put(ctx, KeyFavorites, raw)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
