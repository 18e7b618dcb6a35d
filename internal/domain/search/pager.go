// Package search contiene la máquina de estados de paginación y orden de resultados.
package search

import "github.com/SJellen/fetch-rewards/internal/domain/entity"

// DefaultPageSize granularidad de página del servidor.
const DefaultPageSize = 25

// Pager estado {página, orden} sobre el total conocido. Es un valor: las transiciones
// devuelven un Pager nuevo y las transiciones inválidas devuelven el mismo estado.
type Pager struct {
	Page     int
	PageSize int
	Total    int
	Sort     entity.SortDirection
}

// NewPager crea el estado inicial: página 1, orden ascendente, total desconocido (0).
func NewPager(pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pager{Page: 1, PageSize: pageSize, Sort: entity.SortAsc}
}

// HasNext "siguiente" solo es válido mientras Page×PageSize < Total.
func (p Pager) HasNext() bool {
	return p.Page*p.PageSize < p.Total
}

// HasPrevious indica si no estamos en la primera página.
func (p Pager) HasPrevious() bool {
	return p.Page > 1
}

// Next avanza una página si hay siguiente.
func (p Pager) Next() Pager {
	if !p.HasNext() {
		return p
	}
	p.Page++
	return p
}

// Previous retrocede una página si no estamos en la primera.
func (p Pager) Previous() Pager {
	if !p.HasPrevious() {
		return p
	}
	p.Page--
	return p
}

// ToggleSort invierte el orden y fuerza la página 1.
func (p Pager) ToggleSort() Pager {
	p.Sort = p.Sort.Flip()
	p.Page = 1
	return p
}

// CanGoTo 1 <= page y page×size < total+size. La página 1 siempre es válida.
func (p Pager) CanGoTo(page int) bool {
	if page < 1 {
		return false
	}
	if page == 1 {
		return true
	}
	return page*p.PageSize < p.Total+p.PageSize
}

// GoTo salta a page si es válida; el bool indica si hubo transición.
func (p Pager) GoTo(page int) (Pager, bool) {
	if !p.CanGoTo(page) {
		return p, false
	}
	p.Page = page
	return p, true
}

// Reset vuelve a la página 1 conservando orden y total.
func (p Pager) Reset() Pager {
	p.Page = 1
	return p
}

// WithTotal refresca el total tras una búsqueda exitosa.
func (p Pager) WithTotal(total int) Pager {
	if total < 0 {
		total = 0
	}
	p.Total = total
	return p
}

// Offset desplazamiento (page-1)×size para el parámetro from.
func (p Pager) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// TotalPages ceil(total/size); 0 cuando no hay resultados.
func (p Pager) TotalPages() int {
	if p.Total <= 0 || p.PageSize <= 0 {
		return 0
	}
	pages := p.Total / p.PageSize
	if p.Total%p.PageSize > 0 {
		pages++
	}
	return pages
}
