package ports

import (
	"context"

	"github.com/SJellen/fetch-rewards/internal/domain/entity"
)

// DogCatalog puerto de salida hacia el catálogo remoto de perros.
// La aplicación solo conoce este contrato; el adaptador HTTP vive en infrastructure/catalog.
type DogCatalog interface {
	// Breeds lista de razas del catálogo.
	Breeds(ctx context.Context) ([]string, error)
	// SearchDogs devuelve los ids de la página pedida y el total global.
	SearchDogs(ctx context.Context, q entity.SearchQuery) (entity.SearchResult, error)
	// Dogs expande ids a registros completos, en el orden recibido del servidor.
	Dogs(ctx context.Context, ids []string) ([]entity.Dog, error)
	// Match devuelve exactamente un id elegido entre ids.
	Match(ctx context.Context, ids []string) (string, error)
}

// LocationCatalog puerto de salida para ubicaciones (códigos postales).
type LocationCatalog interface {
	// Locations resuelve códigos postales a coordenadas. Los códigos desconocidos se omiten.
	Locations(ctx context.Context, zipCodes []string) ([]entity.Location, error)
	SearchLocations(ctx context.Context, q entity.LocationSearch) (entity.LocationPage, error)
}

// SessionGateway handshake de sesión con el catálogo (cookie de credenciales).
type SessionGateway interface {
	Login(ctx context.Context, name, email string) error
	Logout(ctx context.Context) error
}
