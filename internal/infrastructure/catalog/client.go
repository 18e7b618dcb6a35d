// Package catalog adapta el cliente fetch a los puertos DogCatalog, LocationCatalog y SessionGateway.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SJellen/fetch-rewards/internal/application/ports"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
	"github.com/SJellen/fetch-rewards/internal/infrastructure/fetch"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.DogCatalog      = (*Client)(nil)
	_ ports.LocationCatalog = (*Client)(nil)
	_ ports.SessionGateway  = (*Client)(nil)
)

const (
	pathLogin           = "/auth/login"
	pathLogout          = "/auth/logout"
	pathBreeds          = "/dogs/breeds"
	pathDogSearch       = "/dogs/search"
	pathDogs            = "/dogs"
	pathMatch           = "/dogs/match"
	pathLocations       = "/locations"
	pathLocationsSearch = "/locations/search"

	// MaxIDsPerRequest límite del servidor para /dogs y /locations.
	MaxIDsPerRequest = 100
)

// Client adaptador HTTP del catálogo remoto.
type Client struct {
	api *fetch.Client
}

// New construye el adaptador sobre un cliente fetch ya configurado.
func New(c *fetch.Client) *Client {
	return &Client{api: c}
}

// Login establece la cookie de sesión. El servidor responde texto plano "OK".
func (c *Client) Login(ctx context.Context, name, email string) error {
	return c.api.Send(ctx, fetch.Request{
		Method: http.MethodPost,
		Path:   pathLogin,
		Body:   loginRequest{Name: name, Email: email},
	})
}

// Logout invalida la cookie de sesión.
func (c *Client) Logout(ctx context.Context) error {
	return c.api.Send(ctx, fetch.Request{Method: http.MethodPost, Path: pathLogout})
}

func (c *Client) Breeds(ctx context.Context) ([]string, error) {
	breeds, err := fetch.Do[[]string](ctx, c.api, fetch.Request{Method: http.MethodGet, Path: pathBreeds})
	if err != nil {
		return nil, fmt.Errorf("catalog: razas: %w", err)
	}
	return breeds, nil
}

func (c *Client) SearchDogs(ctx context.Context, q entity.SearchQuery) (entity.SearchResult, error) {
	res, err := fetch.Do[searchPayload](ctx, c.api, fetch.Request{
		Method: http.MethodGet,
		Path:   pathDogSearch,
		Query:  searchValues(q),
	})
	if err != nil {
		return entity.SearchResult{}, fmt.Errorf("catalog: búsqueda: %w", err)
	}
	ids := res.ResultIDs
	if ids == nil {
		ids = []string{}
	}
	return entity.SearchResult{ResultIDs: ids, Total: res.Total}, nil
}

// searchValues codifica la consulta. breeds solo viaja si hay exactamente una raza;
// zipCodes se repite por cada código.
func searchValues(q entity.SearchQuery) url.Values {
	v := url.Values{}
	if q.Breed != "" {
		v.Set("breeds", q.Breed)
	}
	for _, zip := range q.ZipCodes {
		v.Add("zipCodes", zip)
	}
	if q.AgeMin != nil {
		v.Set("ageMin", strconv.Itoa(*q.AgeMin))
	}
	if q.AgeMax != nil {
		v.Set("ageMax", strconv.Itoa(*q.AgeMax))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.From > 0 {
		v.Set("from", strconv.Itoa(q.From))
	}
	if q.Sort.Valid() {
		v.Set("sort", q.SortParam())
	}
	return v
}

// Dogs expande ids en lotes de MaxIDsPerRequest, concatenando en orden.
func (c *Client) Dogs(ctx context.Context, ids []string) ([]entity.Dog, error) {
	dogs := make([]entity.Dog, 0, len(ids))
	for _, batch := range chunk(ids, MaxIDsPerRequest) {
		payload, err := fetch.Do[[]dogPayload](ctx, c.api, fetch.Request{
			Method: http.MethodPost,
			Path:   pathDogs,
			Body:   batch,
		})
		if err != nil {
			return nil, fmt.Errorf("catalog: expandir %d perros: %w", len(batch), err)
		}
		for _, d := range payload {
			dogs = append(dogs, d.toEntity())
		}
	}
	return dogs, nil
}

func (c *Client) Match(ctx context.Context, ids []string) (string, error) {
	res, err := fetch.Do[matchPayload](ctx, c.api, fetch.Request{
		Method: http.MethodPost,
		Path:   pathMatch,
		Body:   ids,
	})
	if err != nil {
		return "", fmt.Errorf("catalog: match: %w", err)
	}
	if res.Match == "" {
		return "", fmt.Errorf("catalog: match vacío")
	}
	return res.Match, nil
}

// Locations el servidor devuelve null para códigos desconocidos; se omiten.
func (c *Client) Locations(ctx context.Context, zipCodes []string) ([]entity.Location, error) {
	locations := make([]entity.Location, 0, len(zipCodes))
	for _, batch := range chunk(zipCodes, MaxIDsPerRequest) {
		payload, err := fetch.Do[[]*locationPayload](ctx, c.api, fetch.Request{
			Method: http.MethodPost,
			Path:   pathLocations,
			Body:   batch,
		})
		if err != nil {
			return nil, fmt.Errorf("catalog: ubicaciones: %w", err)
		}
		for _, l := range payload {
			if l == nil {
				continue
			}
			locations = append(locations, l.toEntity())
		}
	}
	return locations, nil
}

func (c *Client) SearchLocations(ctx context.Context, q entity.LocationSearch) (entity.LocationPage, error) {
	res, err := fetch.Do[locationSearchPayload](ctx, c.api, fetch.Request{
		Method: http.MethodPost,
		Path:   pathLocationsSearch,
		Body:   newLocationSearchRequest(q),
	})
	if err != nil {
		return entity.LocationPage{}, fmt.Errorf("catalog: búsqueda de ubicaciones: %w", err)
	}
	page := entity.LocationPage{Results: make([]entity.Location, 0, len(res.Results)), Total: res.Total}
	for _, l := range res.Results {
		page.Results = append(page.Results, l.toEntity())
	}
	return page, nil
}

func chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}
