// Package geo resuelve restricciones de ubicación (radio, ciudad/estados) a listas de códigos postales.
package geo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/rs/zerolog"

	"github.com/SJellen/fetch-rewards/internal/application/ports"
	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	domaingeo "github.com/SJellen/fetch-rewards/internal/domain/geo"
)

const (
	// DefaultSearchCap tamaño pedido a /locations/search; la caja sobre-incluye las esquinas.
	DefaultSearchCap = 10000
	// AreaSearchCap máximo de códigos por ciudad/estados (límite de zipCodes en /dogs/search).
	AreaSearchCap = 100

	previewPrecision = 5
	osmEmbedURL      = "https://www.openstreetmap.org/export/embed.html"
)

// Config parámetros del resolver.
type Config struct {
	SearchCap int
}

// Resolver convierte "código postal + radio" en códigos postales cercanos.
type Resolver struct {
	locations ports.LocationCatalog
	searchCap int
	log       zerolog.Logger
}

func NewResolver(locations ports.LocationCatalog, cfg Config, log zerolog.Logger) *Resolver {
	if cfg.SearchCap <= 0 || cfg.SearchCap > DefaultSearchCap {
		cfg.SearchCap = DefaultSearchCap
	}
	return &Resolver{locations: locations, searchCap: cfg.SearchCap, log: log}
}

// Resolve devuelve el ancla primero y luego los códigos dentro del radio, por distancia ascendente.
// Nunca falla: ante cualquier error devuelve [zip].
func (r *Resolver) Resolve(ctx context.Context, zip string, radiusMiles float64) []string {
	locs := r.ResolveWithDistances(ctx, zip, radiusMiles)
	zips := make([]string, 0, len(locs))
	for _, l := range locs {
		zips = append(zips, l.ZipCode)
	}
	return zips
}

// ResolveWithDistances igual que Resolve pero con la distancia al ancla de cada código.
func (r *Resolver) ResolveWithDistances(ctx context.Context, zip string, radiusMiles float64) []entity.Location {
	log := r.log.With().Str("zip_code", zip).Float64("radius_miles", radiusMiles).Logger()
	fallback := []entity.Location{{ZipCode: zip}}

	anchor, err := r.locate(ctx, zip)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo resolver el código ancla, se usa solo el ancla")
		return fallback
	}
	anchor.DistanceMiles = 0
	if radiusMiles <= 0 {
		return []entity.Location{anchor}
	}

	center := entity.Coordinates{Lat: anchor.Latitude, Lon: anchor.Longitude}
	edges := domaingeo.BoxAround(center, radiusMiles).Edges()
	page, err := r.locations.SearchLocations(ctx, entity.LocationSearch{GeoBoundingBox: &edges, Size: r.searchCap})
	if err != nil {
		log.Warn().Err(err).Msg("búsqueda por caja falló, se usa solo el ancla")
		return []entity.Location{anchor}
	}
	if len(page.Results) == 0 {
		log.Debug().Msg("la caja no devolvió ubicaciones")
		return []entity.Location{anchor}
	}

	matches := make([]entity.Location, 0, len(page.Results))
	seen := map[string]struct{}{zip: {}}
	for _, c := range page.Results {
		if _, dup := seen[c.ZipCode]; dup {
			continue
		}
		d := domaingeo.HaversineMiles(center, entity.Coordinates{Lat: c.Latitude, Lon: c.Longitude})
		if d > radiusMiles {
			continue
		}
		seen[c.ZipCode] = struct{}{}
		c.DistanceMiles = d
		matches = append(matches, c)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceMiles != matches[j].DistanceMiles {
			return matches[i].DistanceMiles < matches[j].DistanceMiles
		}
		return matches[i].ZipCode < matches[j].ZipCode
	})

	log.Debug().
		Int("candidates", len(page.Results)).
		Int("matches", len(matches)).
		Msg("radio resuelto")
	return append([]entity.Location{anchor}, matches...)
}

// ResolveArea códigos postales de una ciudad y/o estados (máximo AreaSearchCap).
// A diferencia de Resolve, devuelve el error para que el llamador decida.
func (r *Resolver) ResolveArea(ctx context.Context, city string, states []string) ([]string, error) {
	city = strings.TrimSpace(city)
	cleaned := make([]string, 0, len(states))
	for _, s := range states {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if city == "" && len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: se requiere ciudad o estados", domain.ErrInvalidInput)
	}

	page, err := r.locations.SearchLocations(ctx, entity.LocationSearch{City: city, States: cleaned, Size: AreaSearchCap})
	if err != nil {
		return nil, fmt.Errorf("geo: área %q %v: %w", city, cleaned, err)
	}
	zips := make([]string, 0, len(page.Results))
	seen := make(map[string]struct{}, len(page.Results))
	for _, l := range page.Results {
		if _, dup := seen[l.ZipCode]; dup || l.ZipCode == "" {
			continue
		}
		seen[l.ZipCode] = struct{}{}
		zips = append(zips, l.ZipCode)
	}
	return zips, nil
}

// Preview vista de mapa centrada en el código postal, del tamaño de una celda geohash de precisión 5.
func (r *Resolver) Preview(ctx context.Context, zip string) (entity.MapPreview, error) {
	loc, err := r.locate(ctx, zip)
	if err != nil {
		return entity.MapPreview{}, err
	}

	hash := geohash.EncodeWithPrecision(loc.Latitude, loc.Longitude, previewPrecision)
	cell := geohash.BoundingBox(hash)
	halfLat := (cell.MaxLat - cell.MinLat) / 2
	halfLon := (cell.MaxLng - cell.MinLng) / 2

	p := entity.MapPreview{
		ZipCode: loc.ZipCode,
		Center:  entity.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude},
		Geohash: hash,
		MinLat:  loc.Latitude - halfLat,
		MaxLat:  loc.Latitude + halfLat,
		MinLon:  loc.Longitude - halfLon,
		MaxLon:  loc.Longitude + halfLon,
	}
	p.EmbedURL = embedURL(p)
	return p, nil
}

func embedURL(p entity.MapPreview) string {
	bbox := strings.Join([]string{
		formatCoord(p.MinLon),
		formatCoord(p.MinLat),
		formatCoord(p.MaxLon),
		formatCoord(p.MaxLat),
	}, ",")
	marker := formatCoord(p.Center.Lat) + "," + formatCoord(p.Center.Lon)

	v := url.Values{}
	v.Set("bbox", bbox)
	v.Set("layer", "mapnik")
	v.Set("marker", marker)
	return osmEmbedURL + "?" + v.Encode()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// locate resuelve un único código postal.
func (r *Resolver) locate(ctx context.Context, zip string) (entity.Location, error) {
	locs, err := r.locations.Locations(ctx, []string{zip})
	if err != nil {
		return entity.Location{}, fmt.Errorf("geo: ubicar %s: %w", zip, err)
	}
	for _, l := range locs {
		if l.ZipCode == zip {
			return l, nil
		}
	}
	return entity.Location{}, fmt.Errorf("geo: %s: %w", zip, domain.ErrNotFound)
}
