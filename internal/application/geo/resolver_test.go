package geo_test

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/mmcloughlin/geohash"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SJellen/fetch-rewards/internal/application/geo"
	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	domaingeo "github.com/SJellen/fetch-rewards/internal/domain/geo"
)

// ─── Fake ────────────────────────────────────────────────────────────────────

type fakeLocations struct {
	byZip     map[string]entity.Location
	results   []entity.Location
	locErr    error
	searchErr error
	searches  []entity.LocationSearch
}

func (f *fakeLocations) Locations(_ context.Context, zips []string) ([]entity.Location, error) {
	if f.locErr != nil {
		return nil, f.locErr
	}
	out := []entity.Location{}
	for _, z := range zips {
		if l, ok := f.byZip[z]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLocations) SearchLocations(_ context.Context, q entity.LocationSearch) (entity.LocationPage, error) {
	f.searches = append(f.searches, q)
	if f.searchErr != nil {
		return entity.LocationPage{}, f.searchErr
	}
	return entity.LocationPage{Results: f.results, Total: len(f.results)}, nil
}

func newResolver(f *fakeLocations) *geo.Resolver {
	return geo.NewResolver(f, geo.Config{}, zerolog.Nop())
}

// northOf ubicación a miles millas al norte de (lat, lon) sobre el meridiano.
func northOf(zip string, lat, lon, miles float64) entity.Location {
	dLat := miles / domaingeo.EarthRadiusMiles * 180 / math.Pi
	return entity.Location{ZipCode: zip, Latitude: lat + dLat, Longitude: lon}
}

var anchor = entity.Location{ZipCode: "19000", Latitude: 40.0, Longitude: -75.0}

// ─── Resolve ─────────────────────────────────────────────────────────────────

func TestResolve_ExcludesCandidateOutsideRadius(t *testing.T) {
	f := &fakeLocations{
		byZip:   map[string]entity.Location{anchor.ZipCode: anchor},
		results: []entity.Location{anchor, northOf("19030", 40, -75, 30)},
	}

	zips := newResolver(f).Resolve(context.Background(), anchor.ZipCode, 25)

	assert.Equal(t, []string{"19000"}, zips)
}

func TestResolve_IncludesAndOrdersByDistance(t *testing.T) {
	f := &fakeLocations{
		byZip: map[string]entity.Location{anchor.ZipCode: anchor},
		results: []entity.Location{
			northOf("19349", 40, -75, 34.9),
			northOf("19030", 40, -75, 30),
			northOf("19050", 40, -75, 50),
			northOf("19005", 40, -75, 5),
		},
	}

	locs := newResolver(f).ResolveWithDistances(context.Background(), anchor.ZipCode, 35)

	require.Len(t, locs, 4)
	assert.Equal(t, "19000", locs[0].ZipCode, "el ancla siempre primero")
	assert.Equal(t, "19005", locs[1].ZipCode)
	assert.Equal(t, "19030", locs[2].ZipCode)
	assert.Equal(t, "19349", locs[3].ZipCode)
	assert.InDelta(t, 30, locs[2].DistanceMiles, 1e-6)
	assert.Less(t, locs[2].DistanceMiles, locs[3].DistanceMiles)
}

func TestResolve_SendsBoundingBoxWithLargeCap(t *testing.T) {
	f := &fakeLocations{
		byZip:   map[string]entity.Location{anchor.ZipCode: anchor},
		results: []entity.Location{anchor},
	}

	newResolver(f).Resolve(context.Background(), anchor.ZipCode, 69)

	require.Len(t, f.searches, 1)
	q := f.searches[0]
	assert.Equal(t, geo.DefaultSearchCap, q.Size)
	require.NotNil(t, q.GeoBoundingBox)
	assert.InDelta(t, 41.0, q.GeoBoundingBox.Top.Lat, 1e-9)
	assert.InDelta(t, 39.0, q.GeoBoundingBox.Bottom.Lat, 1e-9)
	assert.Less(t, q.GeoBoundingBox.Left.Lon, -75.0)
	assert.Greater(t, q.GeoBoundingBox.Right.Lon, -75.0)
}

func TestResolve_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		f    *fakeLocations
	}{
		{
			name: "caja sin resultados",
			f:    &fakeLocations{byZip: map[string]entity.Location{anchor.ZipCode: anchor}},
		},
		{
			name: "ancla desconocida",
			f:    &fakeLocations{byZip: map[string]entity.Location{}},
		},
		{
			name: "error al ubicar el ancla",
			f:    &fakeLocations{locErr: errors.New("red caída")},
		},
		{
			name: "error en la búsqueda por caja",
			f: &fakeLocations{
				byZip:     map[string]entity.Location{anchor.ZipCode: anchor},
				searchErr: errors.New("HTTP 500"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zips := newResolver(tt.f).Resolve(context.Background(), anchor.ZipCode, 10)
			assert.Equal(t, []string{anchor.ZipCode}, zips)
		})
	}
}

func TestResolve_ZeroRadiusSkipsBoxQuery(t *testing.T) {
	f := &fakeLocations{byZip: map[string]entity.Location{anchor.ZipCode: anchor}}

	zips := newResolver(f).Resolve(context.Background(), anchor.ZipCode, 0)

	assert.Equal(t, []string{anchor.ZipCode}, zips)
	assert.Empty(t, f.searches)
}

// ─── ResolveArea ─────────────────────────────────────────────────────────────

func TestResolveArea(t *testing.T) {
	f := &fakeLocations{results: []entity.Location{
		{ZipCode: "73301"}, {ZipCode: "78701"}, {ZipCode: "73301"},
	}}

	zips, err := newResolver(f).ResolveArea(context.Background(), " Austin ", []string{"tx", " "})

	require.NoError(t, err)
	assert.Equal(t, []string{"73301", "78701"}, zips)
	require.Len(t, f.searches, 1)
	assert.Equal(t, "Austin", f.searches[0].City)
	assert.Equal(t, []string{"TX"}, f.searches[0].States)
	assert.Equal(t, geo.AreaSearchCap, f.searches[0].Size)
	assert.Nil(t, f.searches[0].GeoBoundingBox)
}

func TestResolveArea_RequiresCityOrStates(t *testing.T) {
	_, err := newResolver(&fakeLocations{}).ResolveArea(context.Background(), "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveArea_PropagatesErrors(t *testing.T) {
	f := &fakeLocations{searchErr: errors.New("HTTP 503")}
	_, err := newResolver(f).ResolveArea(context.Background(), "Austin", nil)
	assert.Error(t, err)
}

// ─── Preview ─────────────────────────────────────────────────────────────────

func TestPreview(t *testing.T) {
	nyc := entity.Location{ZipCode: "10001", Latitude: 40.7506, Longitude: -73.9972}
	f := &fakeLocations{byZip: map[string]entity.Location{nyc.ZipCode: nyc}}

	p, err := newResolver(f).Preview(context.Background(), "10001")

	require.NoError(t, err)
	assert.Len(t, p.Geohash, 5)
	assert.True(t, geohash.BoundingBox(p.Geohash).Contains(nyc.Latitude, nyc.Longitude))
	assert.InDelta(t, nyc.Latitude, (p.MinLat+p.MaxLat)/2, 1e-9)
	assert.InDelta(t, nyc.Longitude, (p.MinLon+p.MaxLon)/2, 1e-9)
	assert.Less(t, p.MinLat, p.MaxLat)

	u, err := url.Parse(p.EmbedURL)
	require.NoError(t, err)
	assert.Equal(t, "www.openstreetmap.org", u.Host)
	assert.Equal(t, "40.750600,-73.997200", u.Query().Get("marker"))
	assert.Len(t, strings.Split(u.Query().Get("bbox"), ","), 4)
}

func TestPreview_UnknownZip(t *testing.T) {
	_, err := newResolver(&fakeLocations{byZip: map[string]entity.Location{}}).Preview(context.Background(), "00000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
