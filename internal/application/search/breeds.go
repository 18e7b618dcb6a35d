package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/SJellen/fetch-rewards/internal/application/ports"
	"github.com/SJellen/fetch-rewards/internal/domain"
)

// breedCatalog cache de razas del catálogo. Un error no se cachea: la próxima llamada reintenta.
type breedCatalog struct {
	source ports.DogCatalog

	mu     sync.Mutex
	sorted []string
	byFold map[string]string
}

func (b *breedCatalog) list(ctx context.Context) ([]string, error) {
	if err := b.load(ctx); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.sorted...), nil
}

// canonical devuelve la raza tal como la escribe el catálogo ("poodle" -> "Poodle").
func (b *breedCatalog) canonical(ctx context.Context, breed string) (string, error) {
	if err := b.load(ctx); err != nil {
		return "", fmt.Errorf("razas no disponibles: %w", err)
	}
	key := foldBreed(breed)

	b.mu.Lock()
	defer b.mu.Unlock()
	if name, ok := b.byFold[key]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownBreed, strings.TrimSpace(breed))
}

func (b *breedCatalog) load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.byFold != nil {
		return nil
	}

	breeds, err := b.source.Breeds(ctx)
	if err != nil {
		return err
	}

	sorted := make([]string, 0, len(breeds))
	byFold := make(map[string]string, len(breeds))
	for _, name := range breeds {
		name = strings.TrimSpace(name)
		key := foldBreed(name)
		if key == "" {
			continue
		}
		if _, dup := byFold[key]; dup {
			continue
		}
		byFold[key] = name
		sorted = append(sorted, name)
	}
	collate.New(language.English).SortStrings(sorted)

	b.sorted = sorted
	b.byFold = byFold
	return nil
}

// foldBreed clave de comparación: sin distinción de mayúsculas ni espacios repetidos.
func foldBreed(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}
