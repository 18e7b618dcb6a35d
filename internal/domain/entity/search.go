package entity

import (
	"strconv"
	"strings"
)

// SortDirection dirección de orden por nombre (único campo ordenable).
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortField único campo ordenable soportado por el catálogo.
const SortField = "name"

// Flip devuelve la dirección contraria.
func (d SortDirection) Flip() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Valid indica si la dirección es asc o desc.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// SearchQuery consulta paginada contra /dogs/search.
// Breed es opcional y singular; AgeMin/AgeMax son cotas inclusivas.
type SearchQuery struct {
	Breed    string
	AgeMin   *int
	AgeMax   *int
	ZipCodes []string
	Size     int
	From     int
	Sort     SortDirection
}

// SortParam valor del parámetro sort (ej: "name:asc").
func (q SearchQuery) SortParam() string {
	return SortField + ":" + string(q.Sort)
}

// Key clave canónica de la consulta; dos consultas con la misma clave son la misma operación.
func (q SearchQuery) Key() string {
	var b strings.Builder
	b.WriteString("breed=")
	b.WriteString(q.Breed)
	b.WriteString("&ageMin=")
	if q.AgeMin != nil {
		b.WriteString(strconv.Itoa(*q.AgeMin))
	}
	b.WriteString("&ageMax=")
	if q.AgeMax != nil {
		b.WriteString(strconv.Itoa(*q.AgeMax))
	}
	b.WriteString("&zip=")
	b.WriteString(strings.Join(q.ZipCodes, ","))
	b.WriteString("&size=")
	b.WriteString(strconv.Itoa(q.Size))
	b.WriteString("&from=")
	b.WriteString(strconv.Itoa(q.From))
	b.WriteString("&sort=")
	b.WriteString(q.SortParam())
	return b.String()
}

// SearchResult identificadores de la página actual más el total global (autoritativo para paginar).
type SearchResult struct {
	ResultIDs []string
	Total     int
}
