// Package favorites mantiene el conjunto persistente de perros favoritos y el pedido de match.
package favorites

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/SJellen/fetch-rewards/internal/application/ports"
	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	"github.com/SJellen/fetch-rewards/internal/domain/repository"
)

// Store conjunto de ids sin duplicados, en orden de inserción.
// Toda mutación es local e inmediata; luego se persiste. Los errores de persistencia
// se registran y no revierten el estado en memoria.
type Store struct {
	repo    repository.FavoritesRepository
	catalog ports.DogCatalog
	log     zerolog.Logger

	mu      sync.RWMutex
	ids     []string
	index   map[string]int
	version uint64

	persistMu sync.Mutex
	persisted uint64
}

// NewStore crea el store y carga lo persistido. Datos ausentes o corruptos dejan el conjunto vacío.
func NewStore(ctx context.Context, repo repository.FavoritesRepository, catalog ports.DogCatalog, log zerolog.Logger) *Store {
	s := &Store{
		repo:    repo,
		catalog: catalog,
		log:     log,
		index:   map[string]int{},
	}
	s.Reload(ctx)
	return s
}

// Reload reemplaza el contenido en memoria por lo persistido (inicio de sesión).
func (s *Store) Reload(ctx context.Context) {
	ids, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("favoritos persistidos ilegibles, se inicia vacío")
		ids = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make([]string, 0, len(ids))
	s.index = make(map[string]int, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = len(s.ids)
		s.ids = append(s.ids, id)
	}
	s.version++
	s.persistMu.Lock()
	s.persisted = s.version
	s.persistMu.Unlock()
}

// Toggle agrega id si no está y lo quita si está. Devuelve la pertenencia resultante.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	member := !s.containsLocked(id)
	if member {
		s.addLocked(id)
	} else {
		s.removeLocked(id)
	}
	snap, version := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap, version)
	return member, nil
}

// Add agrega id; devuelve false si ya estaba.
func (s *Store) Add(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	if s.containsLocked(id) {
		s.mu.Unlock()
		return false, nil
	}
	s.addLocked(id)
	snap, version := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap, version)
	return true, nil
}

// Remove quita id; devuelve false si no estaba.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	if !s.containsLocked(id) {
		s.mu.Unlock()
		return false
	}
	s.removeLocked(id)
	snap, version := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap, version)
	return true
}

// Clear vacía el conjunto (logout).
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.ids = []string{}
	s.index = map[string]int{}
	snap, version := s.commitLocked()
	s.mu.Unlock()

	s.persist(ctx, snap, version)
}

func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.containsLocked(id)
}

// Snapshot copia de los ids en orden de inserción.
func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.ids...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// RequestMatch envía todos los favoritos al endpoint de match y expande el id elegido.
// Un fallo no toca los favoritos.
func (s *Store) RequestMatch(ctx context.Context) (entity.Dog, error) {
	ids := s.Snapshot()
	if len(ids) == 0 {
		return entity.Dog{}, domain.ErrNoFavorites
	}

	matchID, err := s.catalog.Match(ctx, ids)
	if err != nil {
		s.log.Error().Err(err).Int("favorites", len(ids)).Msg("match falló")
		return entity.Dog{}, fmt.Errorf("%w: %w", domain.ErrMatchFailed, err)
	}

	dogs, err := s.catalog.Dogs(ctx, []string{matchID})
	if err != nil {
		s.log.Error().Err(err).Str("dog_id", matchID).Msg("no se pudo expandir el match")
		return entity.Dog{}, fmt.Errorf("%w: %w", domain.ErrMatchFailed, err)
	}
	for _, d := range dogs {
		if d.ID == matchID {
			d.IsFavorite = s.Contains(d.ID)
			return d, nil
		}
	}
	return entity.Dog{}, fmt.Errorf("%w: perro %s no encontrado", domain.ErrMatchFailed, matchID)
}

// FavoriteDogs registros completos de los favoritos, en orden de inserción.
func (s *Store) FavoriteDogs(ctx context.Context) ([]entity.Dog, error) {
	ids := s.Snapshot()
	if len(ids) == 0 {
		return []entity.Dog{}, nil
	}
	dogs, err := s.catalog.Dogs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("favoritos: expandir: %w", err)
	}

	byID := make(map[string]entity.Dog, len(dogs))
	for _, d := range dogs {
		byID[d.ID] = d
	}
	out := make([]entity.Dog, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			d.IsFavorite = true
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) containsLocked(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store) addLocked(id string) {
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
}

func (s *Store) removeLocked(id string) {
	pos := s.index[id]
	s.ids = append(s.ids[:pos], s.ids[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.ids); i++ {
		s.index[s.ids[i]] = i
	}
}

func (s *Store) commitLocked() ([]string, uint64) {
	s.version++
	return append([]string{}, s.ids...), s.version
}

// persist escribe snap salvo que ya se haya persistido una versión más nueva.
func (s *Store) persist(ctx context.Context, snap []string, version uint64) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if version <= s.persisted {
		return
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		s.log.Error().Err(err).Int("favorites", len(snap)).Msg("no se pudieron persistir los favoritos")
		return
	}
	s.persisted = version
}
