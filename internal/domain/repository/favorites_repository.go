package repository

import "context"

// FavoritesRepository persistencia local del conjunto de favoritos (array de ids en orden de inserción).
type FavoritesRepository interface {
	// Load devuelve los ids persistidos. Sin datos previos devuelve un slice vacío y nil;
	// datos corruptos devuelven error y el llamador decide el fallback.
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}
