// Package geo contiene la geodesia del dominio: caja aproximada alrededor de un punto
// y distancia de gran círculo (Haversine). Sin dependencias de infraestructura.
package geo

import (
	"math"

	"github.com/SJellen/fetch-rewards/internal/domain/entity"
)

const (
	// EarthRadiusMiles radio medio terrestre usado por Haversine.
	EarthRadiusMiles = 3959.0
	// MilesPerDegreeLat millas aproximadas por grado de latitud.
	MilesPerDegreeLat = 69.0
)

// Box caja lat/lon en grados. Sobre-incluye área en las esquinas respecto al círculo del radio.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoxAround convierte un radio en millas a una caja en grados con aproximación plana:
// 1/69 grados de latitud por milla y 1/(69·cos(lat)) grados de longitud por milla.
// Válida para radios regionales (no polares, sin cruzar el antimeridiano).
func BoxAround(center entity.Coordinates, radiusMiles float64) Box {
	if radiusMiles < 0 {
		radiusMiles = 0
	}
	latDelta := radiusMiles / MilesPerDegreeLat

	lonDelta := 180.0
	if cosLat := math.Cos(toRadians(center.Lat)); cosLat > 1e-9 {
		lonDelta = math.Min(radiusMiles/(MilesPerDegreeLat*cosLat), 180.0)
	}

	return Box{
		MinLat: math.Max(center.Lat-latDelta, -90),
		MaxLat: math.Min(center.Lat+latDelta, 90),
		MinLon: center.Lon - lonDelta,
		MaxLon: center.Lon + lonDelta,
	}
}

// Center punto medio de la caja.
func (b Box) Center() entity.Coordinates {
	return entity.Coordinates{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}

// Contains indica si el punto cae dentro de la caja (bordes inclusivos).
func (b Box) Contains(p entity.Coordinates) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Edges expresa la caja en el formato de bordes del catálogo: cada borde es la coordenada
// del punto medio de ese lado.
func (b Box) Edges() entity.GeoBoundingBox {
	c := b.Center()
	return entity.GeoBoundingBox{
		Top:    entity.Coordinates{Lat: b.MaxLat, Lon: c.Lon},
		Bottom: entity.Coordinates{Lat: b.MinLat, Lon: c.Lon},
		Left:   entity.Coordinates{Lat: c.Lat, Lon: b.MinLon},
		Right:  entity.Coordinates{Lat: c.Lat, Lon: b.MaxLon},
	}
}

// HaversineMiles distancia de gran círculo en millas:
// a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2); d = 2·R·atan2(√a, √(1−a)).
func HaversineMiles(from, to entity.Coordinates) float64 {
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(to.Lon - from.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	a = math.Min(math.Max(a, 0), 1)

	return 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
