package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	"github.com/SJellen/fetch-rewards/internal/domain/search"
)

// ──────────────────────────────────────────────────────────────────────────────
// Límites de paginación: total=57, size=25 → páginas válidas {1,2,3}
// ──────────────────────────────────────────────────────────────────────────────

func TestPager_BoundsWithTotal57(t *testing.T) {
	p := search.NewPager(25).WithTotal(57)

	assert.Equal(t, 3, p.TotalPages())
	assert.True(t, p.CanGoTo(1))
	assert.True(t, p.CanGoTo(2))
	assert.True(t, p.CanGoTo(3))
	assert.False(t, p.CanGoTo(4))
	assert.False(t, p.CanGoTo(0))

	p = p.Next().Next()
	assert.Equal(t, 3, p.Page)
	assert.False(t, p.HasNext())

	// next desde la página 3 no cambia la página
	assert.Equal(t, 3, p.Next().Page)
}

func TestPager_PreviousStopsAtOne(t *testing.T) {
	p := search.NewPager(25).WithTotal(57)
	assert.False(t, p.HasPrevious())
	assert.Equal(t, 1, p.Previous().Page)

	p = p.Next().Previous()
	assert.Equal(t, 1, p.Page)
}

func TestPager_GoTo(t *testing.T) {
	p := search.NewPager(25).WithTotal(57)

	next, ok := p.GoTo(3)
	assert.True(t, ok)
	assert.Equal(t, 3, next.Page)
	assert.Equal(t, 50, next.Offset())

	same, ok := p.GoTo(4)
	assert.False(t, ok)
	assert.Equal(t, p, same)
}

func TestPager_ZeroTotalOnlyPageOne(t *testing.T) {
	p := search.NewPager(25)

	assert.Equal(t, 0, p.TotalPages())
	assert.True(t, p.CanGoTo(1))
	assert.False(t, p.CanGoTo(2))
	assert.False(t, p.HasNext())
}

func TestPager_TotalExactMultipleOfSize(t *testing.T) {
	p := search.NewPager(25).WithTotal(50)

	assert.Equal(t, 2, p.TotalPages())
	assert.True(t, p.CanGoTo(2))
	assert.False(t, p.CanGoTo(3))
	assert.False(t, p.Next().HasNext())
}

// ──────────────────────────────────────────────────────────────────────────────
// Orden: toggleSort siempre vuelve a la página 1 e invierte exactamente la dirección
// ──────────────────────────────────────────────────────────────────────────────

func TestPager_ToggleSort(t *testing.T) {
	p := search.NewPager(25).WithTotal(57).Next().Next()
	assert.Equal(t, entity.SortAsc, p.Sort)

	toggled := p.ToggleSort()
	assert.Equal(t, 1, toggled.Page)
	assert.Equal(t, entity.SortDesc, toggled.Sort)

	back := toggled.ToggleSort()
	assert.Equal(t, 1, back.Page)
	assert.Equal(t, entity.SortAsc, back.Sort)
}

func TestNewPager_InvalidSizeUsesDefault(t *testing.T) {
	p := search.NewPager(0)
	assert.Equal(t, search.DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}
