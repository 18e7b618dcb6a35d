package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	domainsearch "github.com/SJellen/fetch-rewards/internal/domain/search"
)

// Status resultado de la última búsqueda aplicada.
type Status string

const (
	StatusIdle    Status = "idle"    // todavía no se buscó
	StatusOK      Status = "ok"      // ids y registros completos
	StatusEmpty   Status = "empty"   // búsqueda exitosa sin resultados
	StatusPartial Status = "partial" // ids y total correctos, la expansión a registros falló
	StatusFailed  Status = "failed"  // la búsqueda falló: sin resultados, total 0
)

// LocationFilter radio en millas alrededor de un código postal.
type LocationFilter struct {
	ZipCode     string
	RadiusMiles float64
}

// AreaFilter ciudad y/o estados.
type AreaFilter struct {
	City   string
	States []string
}

// Filters intención de búsqueda del usuario. Restricción de ubicación por precedencia:
// ZipCodes explícitos, luego Location (radio), luego Area.
type Filters struct {
	Breed    string
	AgeMin   *int
	AgeMax   *int
	ZipCodes []string
	Location *LocationFilter
	Area     *AreaFilter
}

func (f Filters) clone() Filters {
	out := f
	if f.AgeMin != nil {
		v := *f.AgeMin
		out.AgeMin = &v
	}
	if f.AgeMax != nil {
		v := *f.AgeMax
		out.AgeMax = &v
	}
	out.ZipCodes = append([]string(nil), f.ZipCodes...)
	if f.Location != nil {
		loc := *f.Location
		out.Location = &loc
	}
	if f.Area != nil {
		area := AreaFilter{City: f.Area.City, States: append([]string(nil), f.Area.States...)}
		out.Area = &area
	}
	return out
}

// State vista de la búsqueda actual.
type State struct {
	Filters     Filters
	ZipCodes    []string // restricción de ubicación efectivamente enviada
	Page        int
	PageSize    int
	TotalPages  int
	Total       int
	Sort        entity.SortDirection
	HasNext     bool
	HasPrevious bool
	ResultIDs   []string
	Dogs        []entity.Dog
	Status      Status
	Error       string
	Generation  uint64
}

// result lo que devuelve una ejecución, antes de aplicarse.
type result struct {
	zipCodes []string
	ids      []string
	dogs     []entity.Dog
	total    int
	status   Status
	err      error
}

// ticket una ejecución emitida: su generación y la foto de filtros/paginador.
type ticket struct {
	gen     uint64
	key     string
	filters Filters
	pager   domainsearch.Pager
}

// runKey identifica la operación para el guard de búsquedas en curso.
func runKey(f Filters, p domainsearch.Pager) string {
	q := entity.SearchQuery{
		Breed:    f.Breed,
		AgeMin:   f.AgeMin,
		AgeMax:   f.AgeMax,
		ZipCodes: f.ZipCodes,
		Size:     p.PageSize,
		From:     p.Offset(),
		Sort:     p.Sort,
	}
	var b strings.Builder
	b.WriteString(q.Key())
	if f.Location != nil {
		b.WriteString("&near=")
		b.WriteString(f.Location.ZipCode)
		b.WriteString("@")
		b.WriteString(strconv.FormatFloat(f.Location.RadiusMiles, 'f', -1, 64))
	}
	if f.Area != nil {
		fmt.Fprintf(&b, "&area=%s|%s", f.Area.City, strings.Join(f.Area.States, ","))
	}
	return b.String()
}
