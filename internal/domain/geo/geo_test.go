package geo_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	"github.com/SJellen/fetch-rewards/internal/domain/geo"
)

// northOf devuelve el punto a `miles` millas exactas al norte de p sobre el meridiano.
func northOf(p entity.Coordinates, miles float64) entity.Coordinates {
	return entity.Coordinates{Lat: p.Lat + (miles/geo.EarthRadiusMiles)*180/math.Pi, Lon: p.Lon}
}

func TestHaversineMiles_SamePointIsZero(t *testing.T) {
	p := entity.Coordinates{Lat: 40.7506, Lon: -73.9972}
	assert.InDelta(t, 0, geo.HaversineMiles(p, p), 1e-9)
}

func TestHaversineMiles_AcrossMeridian(t *testing.T) {
	anchor := entity.Coordinates{Lat: 40.0, Lon: -75.0}
	candidate := northOf(anchor, 30)

	assert.InDelta(t, 30.0, geo.HaversineMiles(anchor, candidate), 1e-6)
	assert.InDelta(t, 30.0, geo.HaversineMiles(candidate, anchor), 1e-6)
}

func TestHaversineMiles_NewYorkPhiladelphia(t *testing.T) {
	nyc := entity.Coordinates{Lat: 40.7128, Lon: -74.0060}
	phl := entity.Coordinates{Lat: 39.9526, Lon: -75.1652}

	// distancia conocida ≈ 80.6 millas
	assert.InDelta(t, 80.6, geo.HaversineMiles(nyc, phl), 0.5)
}

func TestBoxAround_Approximation(t *testing.T) {
	center := entity.Coordinates{Lat: 40.0, Lon: -75.0}
	box := geo.BoxAround(center, 69)

	assert.InDelta(t, 39.0, box.MinLat, 1e-9)
	assert.InDelta(t, 41.0, box.MaxLat, 1e-9)

	lonDelta := 1 / math.Cos(40*math.Pi/180)
	assert.InDelta(t, -75.0-lonDelta, box.MinLon, 1e-9)
	assert.InDelta(t, -75.0+lonDelta, box.MaxLon, 1e-9)

	assert.True(t, box.Contains(center))
	assert.True(t, box.Contains(northOf(center, 60)))
	assert.False(t, box.Contains(northOf(center, 80)))
}

func TestBoxAround_OverIncludesCorners(t *testing.T) {
	center := entity.Coordinates{Lat: 40.0, Lon: -75.0}
	box := geo.BoxAround(center, 10)

	corner := entity.Coordinates{Lat: box.MaxLat, Lon: box.MaxLon}
	assert.True(t, box.Contains(corner))
	assert.Greater(t, geo.HaversineMiles(center, corner), 10.0)
}

func TestBox_Edges(t *testing.T) {
	box := geo.Box{MinLat: 39, MaxLat: 41, MinLon: -76, MaxLon: -74}
	edges := box.Edges()

	assert.Equal(t, entity.Coordinates{Lat: 41, Lon: -75}, edges.Top)
	assert.Equal(t, entity.Coordinates{Lat: 39, Lon: -75}, edges.Bottom)
	assert.Equal(t, entity.Coordinates{Lat: 40, Lon: -76}, edges.Left)
	assert.Equal(t, entity.Coordinates{Lat: 40, Lon: -74}, edges.Right)
}

func TestBoxAround_NegativeRadiusIsPoint(t *testing.T) {
	center := entity.Coordinates{Lat: 10, Lon: 20}
	box := geo.BoxAround(center, -5)
	assert.Equal(t, geo.Box{MinLat: 10, MaxLat: 10, MinLon: 20, MaxLon: 20}, box)
}
