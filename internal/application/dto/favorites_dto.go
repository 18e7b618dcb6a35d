package dto

// FavoritesResponse ids favoritos en orden de inserción.
type FavoritesResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

// ToggleFavoriteResponse resultado de alternar un favorito.
type ToggleFavoriteResponse struct {
	ID         string `json:"id"`
	IsFavorite bool   `json:"isFavorite"`
	Count      int    `json:"count"`
}

// FavoriteDogsResponse registros completos de los favoritos.
type FavoriteDogsResponse struct {
	Dogs []DogResponse `json:"dogs"`
}

// MatchResponse perro elegido por el catálogo entre los favoritos.
type MatchResponse struct {
	Dog DogResponse `json:"dog"`
}

// MapPreviewResponse vista de mapa alrededor del código postal de un perro.
type MapPreviewResponse struct {
	ZipCode  string  `json:"zipCode"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Geohash  string  `json:"geohash"`
	MinLat   float64 `json:"minLat"`
	MinLon   float64 `json:"minLon"`
	MaxLat   float64 `json:"maxLat"`
	MaxLon   float64 `json:"maxLon"`
	EmbedURL string  `json:"embedUrl"`
}
