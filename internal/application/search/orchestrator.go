// Package search es el dueño del estado de búsqueda: filtros, paginación, orden y resultados.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/SJellen/fetch-rewards/internal/application/ports"
	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	domainsearch "github.com/SJellen/fetch-rewards/internal/domain/search"
)

// LocationResolver traduce restricciones de ubicación a códigos postales.
type LocationResolver interface {
	// Resolve nunca falla; en el peor caso devuelve [zip].
	Resolve(ctx context.Context, zip string, radiusMiles float64) []string
	ResolveArea(ctx context.Context, city string, states []string) ([]string, error)
}

// FavoritesReader consulta de pertenencia para recalcular IsFavorite.
type FavoritesReader interface {
	Contains(id string) bool
}

// Orchestrator estado de búsqueda compartido por todas las llamadas de la UI.
// Cada ejecución toma una generación creciente; solo se aplica el resultado de la generación
// que representa la última intención (latest).
type Orchestrator struct {
	dogs      ports.DogCatalog
	locations LocationResolver
	favorites FavoritesReader
	log       zerolog.Logger
	pageSize  int

	mu         sync.Mutex
	filters    Filters
	pager      domainsearch.Pager
	current    result
	generation uint64
	// latest generación cuyo resultado corresponde al estado actual.
	latest  uint64
	applied uint64
	// inFlight clave de consulta -> generación en curso.
	inFlight map[string]uint64

	breeds breedCatalog
}

// NewOrchestrator crea el estado inicial: sin filtros, página 1, orden ascendente.
func NewOrchestrator(dogs ports.DogCatalog, locations LocationResolver, favorites FavoritesReader, pageSize int, log zerolog.Logger) *Orchestrator {
	pager := domainsearch.NewPager(pageSize)
	return &Orchestrator{
		dogs:      dogs,
		locations: locations,
		favorites: favorites,
		log:       log,
		pageSize:  pager.PageSize,
		pager:     pager,
		current:   result{status: StatusIdle},
		inFlight:  map[string]uint64{},
		breeds:    breedCatalog{source: dogs},
	}
}

// Search reemplaza todos los filtros, vuelve a la página 1 y ejecuta.
func (o *Orchestrator) Search(ctx context.Context, f Filters) (State, error) {
	f = f.clone()
	if err := validateAges(f.AgeMin, f.AgeMax); err != nil {
		return o.Snapshot(), err
	}
	if f.Breed != "" {
		canonical, err := o.resolveBreed(ctx, f.Breed)
		if err != nil {
			return o.Snapshot(), err
		}
		f.Breed = canonical
	}
	zips, err := normalizeZipCodes(f.ZipCodes)
	if err != nil {
		return o.Snapshot(), err
	}
	f.ZipCodes = zips
	if f.Location != nil {
		if err := validateLocation(*f.Location); err != nil {
			return o.Snapshot(), err
		}
	}
	if f.Area != nil && strings.TrimSpace(f.Area.City) == "" && len(f.Area.States) == 0 {
		f.Area = nil
	}

	return o.mutateAndRun(ctx, func() error {
		o.filters = f
		o.pager = o.pager.Reset()
		return nil
	})
}

// SetBreed cambia el filtro de raza y re-ejecuta de inmediato en la página 1. Vacío lo quita.
func (o *Orchestrator) SetBreed(ctx context.Context, breed string) (State, error) {
	canonical := ""
	if strings.TrimSpace(breed) != "" {
		c, err := o.resolveBreed(ctx, breed)
		if err != nil {
			return o.Snapshot(), err
		}
		canonical = c
	}
	return o.mutateAndRun(ctx, func() error {
		o.filters.Breed = canonical
		o.pager = o.pager.Reset()
		return nil
	})
}

// resolveBreed valida la raza contra el catálogo. Si el catálogo no se puede cargar se usa
// la raza tal como llegó (espacios normalizados) y el servidor decide.
func (o *Orchestrator) resolveBreed(ctx context.Context, breed string) (string, error) {
	canonical, err := o.breeds.canonical(ctx, breed)
	if err == nil || errors.Is(err, domain.ErrUnknownBreed) {
		return canonical, err
	}
	fallback := strings.Join(strings.Fields(breed), " ")
	o.log.Warn().Err(err).Str("breed", fallback).Msg("razas no disponibles, se filtra con la raza recibida")
	return fallback, nil
}

// SetAgeRange cotas inclusivas; nil quita la cota.
func (o *Orchestrator) SetAgeRange(ctx context.Context, minAge, maxAge *int) (State, error) {
	if err := validateAges(minAge, maxAge); err != nil {
		return o.Snapshot(), err
	}
	return o.mutateAndRun(ctx, func() error {
		o.filters.AgeMin = copyInt(minAge)
		o.filters.AgeMax = copyInt(maxAge)
		o.pager = o.pager.Reset()
		return nil
	})
}

// SetLocation filtra por radio alrededor de zip; reemplaza cualquier otra restricción de ubicación.
func (o *Orchestrator) SetLocation(ctx context.Context, zip string, radiusMiles float64) (State, error) {
	loc := LocationFilter{ZipCode: strings.TrimSpace(zip), RadiusMiles: radiusMiles}
	if err := validateLocation(loc); err != nil {
		return o.Snapshot(), err
	}
	return o.mutateAndRun(ctx, func() error {
		o.filters.ZipCodes = nil
		o.filters.Area = nil
		o.filters.Location = &loc
		o.pager = o.pager.Reset()
		return nil
	})
}

// SetZipCodes restringe a una lista explícita de códigos.
func (o *Orchestrator) SetZipCodes(ctx context.Context, zips []string) (State, error) {
	normalized, err := normalizeZipCodes(zips)
	if err != nil {
		return o.Snapshot(), err
	}
	return o.mutateAndRun(ctx, func() error {
		o.filters.ZipCodes = normalized
		o.filters.Location = nil
		o.filters.Area = nil
		o.pager = o.pager.Reset()
		return nil
	})
}

// SetArea restringe a una ciudad y/o estados.
func (o *Orchestrator) SetArea(ctx context.Context, city string, states []string) (State, error) {
	area := AreaFilter{City: strings.TrimSpace(city)}
	for _, s := range states {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			area.States = append(area.States, s)
		}
	}
	if area.City == "" && len(area.States) == 0 {
		return o.Snapshot(), fmt.Errorf("%w: se requiere ciudad o estados", domain.ErrInvalidInput)
	}
	return o.mutateAndRun(ctx, func() error {
		o.filters.ZipCodes = nil
		o.filters.Location = nil
		o.filters.Area = &area
		o.pager = o.pager.Reset()
		return nil
	})
}

// ClearLocation quita toda restricción de ubicación.
func (o *Orchestrator) ClearLocation(ctx context.Context) (State, error) {
	return o.mutateAndRun(ctx, func() error {
		o.filters.ZipCodes = nil
		o.filters.Location = nil
		o.filters.Area = nil
		o.pager = o.pager.Reset()
		return nil
	})
}

// ToggleSort invierte el orden, vuelve a la página 1 y re-ejecuta.
func (o *Orchestrator) ToggleSort(ctx context.Context) (State, error) {
	return o.mutateAndRun(ctx, func() error {
		o.pager = o.pager.ToggleSort()
		return nil
	})
}

// SetPage salta a page si 1 <= page y page×size < total+size. Fuera de rango no emite petición.
func (o *Orchestrator) SetPage(ctx context.Context, page int) (State, error) {
	return o.mutateAndRun(ctx, func() error {
		next, ok := o.pager.GoTo(page)
		if !ok {
			return fmt.Errorf("%w: %d de %d", domain.ErrPageOutOfRange, page, o.pager.TotalPages())
		}
		o.pager = next
		return nil
	})
}

func (o *Orchestrator) NextPage(ctx context.Context) (State, error) {
	return o.mutateAndRun(ctx, func() error {
		if !o.pager.HasNext() {
			return fmt.Errorf("%w: ya en la última página", domain.ErrPageOutOfRange)
		}
		o.pager = o.pager.Next()
		return nil
	})
}

func (o *Orchestrator) PreviousPage(ctx context.Context) (State, error) {
	return o.mutateAndRun(ctx, func() error {
		if !o.pager.HasPrevious() {
			return fmt.Errorf("%w: ya en la primera página", domain.ErrPageOutOfRange)
		}
		o.pager = o.pager.Previous()
		return nil
	})
}

// Refresh re-ejecuta la búsqueda actual sin cambiar filtros ni página.
func (o *Orchestrator) Refresh(ctx context.Context) (State, error) {
	return o.mutateAndRun(ctx, func() error { return nil })
}

// Breeds catálogo de razas ordenado (cacheado tras la primera carga exitosa).
func (o *Orchestrator) Breeds(ctx context.Context) ([]string, error) {
	return o.breeds.list(ctx)
}

// Reset vuelve al estado inicial (logout). Cualquier ejecución en curso queda obsoleta.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.filters = Filters{}
	o.pager = domainsearch.NewPager(o.pageSize)
	o.current = result{status: StatusIdle}
	o.generation++
	o.latest = o.generation
	o.applied = o.generation
	o.inFlight = map[string]uint64{}
}

// Snapshot estado actual con IsFavorite recalculado.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	st := o.stateLocked()
	o.mu.Unlock()

	if o.favorites != nil {
		for i := range st.Dogs {
			st.Dogs[i].IsFavorite = o.favorites.Contains(st.Dogs[i].ID)
		}
	}
	return st
}

func (o *Orchestrator) stateLocked() State {
	st := State{
		Filters:     o.filters.clone(),
		ZipCodes:    append([]string(nil), o.current.zipCodes...),
		Page:        o.pager.Page,
		PageSize:    o.pager.PageSize,
		TotalPages:  o.pager.TotalPages(),
		Total:       o.pager.Total,
		Sort:        o.pager.Sort,
		HasNext:     o.pager.HasNext(),
		HasPrevious: o.pager.HasPrevious(),
		ResultIDs:   append([]string{}, o.current.ids...),
		Dogs:        append([]entity.Dog{}, o.current.dogs...),
		Status:      o.current.status,
		Generation:  o.applied,
	}
	if o.current.err != nil {
		st.Error = o.current.err.Error()
	}
	return st
}

// mutateAndRun aplica mutate y emite la ejecución en la misma sección crítica,
// así la generación refleja el orden de las mutaciones.
func (o *Orchestrator) mutateAndRun(ctx context.Context, mutate func() error) (State, error) {
	o.mu.Lock()
	if err := mutate(); err != nil {
		o.mu.Unlock()
		return o.Snapshot(), err
	}
	t, err := o.beginLocked()
	o.mu.Unlock()
	if err != nil {
		o.log.Debug().Str("key", t.key).Msg("búsqueda idéntica en curso, se descarta el disparo")
		return o.Snapshot(), err
	}
	defer o.finish(t)

	res := o.execute(ctx, t)
	o.apply(t, res)
	return o.Snapshot(), nil
}

// beginLocked emite una ejecución. Si ya hay una en curso con la misma clave no emite otra:
// la ejecución en curso pasa a ser la última intención y su resultado se aplicará.
func (o *Orchestrator) beginLocked() (ticket, error) {
	key := runKey(o.filters, o.pager)
	if gen, busy := o.inFlight[key]; busy {
		o.latest = gen
		return ticket{gen: gen, key: key}, domain.ErrSearchInFlight
	}
	o.generation++
	o.latest = o.generation
	o.inFlight[key] = o.generation
	return ticket{gen: o.generation, key: key, filters: o.filters.clone(), pager: o.pager}, nil
}

func (o *Orchestrator) finish(t ticket) {
	o.mu.Lock()
	if o.inFlight[t.key] == t.gen {
		delete(o.inFlight, t.key)
	}
	o.mu.Unlock()
}

// execute búsqueda de ids y luego expansión a registros. Nunca devuelve error:
// el fallo queda en el status del resultado.
func (o *Orchestrator) execute(ctx context.Context, t ticket) result {
	log := o.log.With().Uint64("generation", t.gen).Int("page", t.pager.Page).Logger()

	zips, skip := o.locationConstraint(ctx, t.filters, log)
	if skip {
		return result{zipCodes: []string{}, ids: []string{}, dogs: []entity.Dog{}, status: StatusEmpty}
	}

	q := entity.SearchQuery{
		Breed:    t.filters.Breed,
		AgeMin:   t.filters.AgeMin,
		AgeMax:   t.filters.AgeMax,
		ZipCodes: zips,
		Size:     t.pager.PageSize,
		From:     t.pager.Offset(),
		Sort:     t.pager.Sort,
	}
	found, err := o.dogs.SearchDogs(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("query", q.Key()).Msg("búsqueda falló")
		return result{zipCodes: zips, ids: []string{}, dogs: []entity.Dog{}, status: StatusFailed, err: err}
	}

	ids := found.ResultIDs
	if len(ids) > t.pager.PageSize {
		ids = ids[:t.pager.PageSize]
	}
	if len(ids) == 0 {
		return result{zipCodes: zips, ids: []string{}, dogs: []entity.Dog{}, total: found.Total, status: StatusEmpty}
	}

	dogs, err := o.dogs.Dogs(ctx, ids)
	if err != nil {
		log.Error().Err(err).Int("ids", len(ids)).Msg("expansión de resultados falló")
		return result{zipCodes: zips, ids: ids, dogs: []entity.Dog{}, total: found.Total, status: StatusPartial, err: err}
	}
	return result{zipCodes: zips, ids: ids, dogs: orderByIDs(dogs, ids), total: found.Total, status: StatusOK}
}

// locationConstraint resuelve la restricción de ubicación por precedencia.
// skip indica que el área no contiene códigos y no hace falta consultar.
func (o *Orchestrator) locationConstraint(ctx context.Context, f Filters, log zerolog.Logger) ([]string, bool) {
	switch {
	case len(f.ZipCodes) > 0:
		return f.ZipCodes, false
	case f.Location != nil:
		return o.locations.Resolve(ctx, f.Location.ZipCode, f.Location.RadiusMiles), false
	case f.Area != nil:
		zips, err := o.locations.ResolveArea(ctx, f.Area.City, f.Area.States)
		if err != nil {
			log.Warn().Err(err).Str("city", f.Area.City).Strs("states", f.Area.States).
				Msg("no se pudo resolver el área, se busca sin restricción de ubicación")
			return nil, false
		}
		return zips, len(zips) == 0
	default:
		return nil, false
	}
}

// apply reemplaza el resultado solo si t corresponde a la última intención.
func (o *Orchestrator) apply(t ticket, res result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if t.gen != o.latest {
		o.log.Debug().
			Uint64("generation", t.gen).
			Uint64("latest", o.latest).
			Msg("respuesta obsoleta descartada")
		return
	}
	o.current = res
	o.pager = o.pager.WithTotal(res.total)
	o.applied = t.gen
}

func orderByIDs(dogs []entity.Dog, ids []string) []entity.Dog {
	byID := make(map[string]entity.Dog, len(dogs))
	for _, d := range dogs {
		byID[d.ID] = d
	}
	out := make([]entity.Dog, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out
}

func validateAges(minAge, maxAge *int) error {
	if minAge != nil && *minAge < 0 {
		return fmt.Errorf("%w: ageMin=%d", domain.ErrInvalidAgeRange, *minAge)
	}
	if maxAge != nil && *maxAge < 0 {
		return fmt.Errorf("%w: ageMax=%d", domain.ErrInvalidAgeRange, *maxAge)
	}
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return fmt.Errorf("%w: %d > %d", domain.ErrInvalidAgeRange, *minAge, *maxAge)
	}
	return nil
}

func validateLocation(l LocationFilter) error {
	if !entity.ValidZipCode(l.ZipCode) {
		return fmt.Errorf("%w: código postal %q", domain.ErrInvalidInput, l.ZipCode)
	}
	if l.RadiusMiles < 0 {
		return fmt.Errorf("%w: radio negativo", domain.ErrInvalidInput)
	}
	return nil
}

func normalizeZipCodes(zips []string) ([]string, error) {
	if len(zips) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(zips))
	seen := make(map[string]struct{}, len(zips))
	for _, z := range zips {
		z = strings.TrimSpace(z)
		if !entity.ValidZipCode(z) {
			return nil, fmt.Errorf("%w: código postal %q", domain.ErrInvalidInput, z)
		}
		if _, dup := seen[z]; dup {
			continue
		}
		seen[z] = struct{}{}
		out = append(out, z)
	}
	return out, nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

