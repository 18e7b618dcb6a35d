package dto

// LocationFilterRequest radio en millas alrededor de un código postal.
type LocationFilterRequest struct {
	ZipCode     string  `json:"zipCode" validate:"required,len=5"`
	RadiusMiles float64 `json:"radiusMiles" validate:"min=0"`
}

// AreaFilterRequest ciudad y/o estados (abreviatura de dos letras).
type AreaFilterRequest struct {
	City   string   `json:"city"`
	States []string `json:"states"`
}

// SearchRequest body de POST /api/search: reemplaza todos los filtros.
type SearchRequest struct {
	Breed    string                 `json:"breed"`
	AgeMin   *int                   `json:"ageMin" validate:"omitempty,min=0"`
	AgeMax   *int                   `json:"ageMax" validate:"omitempty,min=0"`
	ZipCodes []string               `json:"zipCodes"`
	Location *LocationFilterRequest `json:"location"`
	Area     *AreaFilterRequest     `json:"area"`
}

// BreedRequest body de PUT /api/search/breed. Vacío quita el filtro.
type BreedRequest struct {
	Breed string `json:"breed"`
}

// AgeRangeRequest body de PUT /api/search/age. Un límite nulo no restringe.
type AgeRangeRequest struct {
	AgeMin *int `json:"ageMin" validate:"omitempty,min=0"`
	AgeMax *int `json:"ageMax" validate:"omitempty,min=0"`
}

// LocationRequest body de PUT /api/search/location. Se usa la primera forma presente:
// zipCodes, zipCode (+radiusMiles), city/states. Sin ninguna se quita la restricción.
type LocationRequest struct {
	ZipCodes    []string `json:"zipCodes"`
	ZipCode     string   `json:"zipCode"`
	RadiusMiles float64  `json:"radiusMiles"`
	City        string   `json:"city"`
	States      []string `json:"states"`
}

// PageRequest body de PUT /api/search/page.
type PageRequest struct {
	Page int `json:"page" validate:"min=1"`
}

// SearchFiltersResponse filtros activos.
type SearchFiltersResponse struct {
	Breed    string                 `json:"breed,omitempty"`
	AgeMin   *int                   `json:"ageMin,omitempty"`
	AgeMax   *int                   `json:"ageMax,omitempty"`
	ZipCodes []string               `json:"zipCodes,omitempty"`
	Location *LocationFilterRequest `json:"location,omitempty"`
	Area     *AreaFilterRequest     `json:"area,omitempty"`
}

// DogResponse perro para la grilla de resultados y favoritos.
type DogResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Age        int    `json:"age"`
	ZipCode    string `json:"zipCode"`
	Img        string `json:"img"`
	IsFavorite bool   `json:"isFavorite"`
}

// SearchStateResponse vista completa de la búsqueda actual.
type SearchStateResponse struct {
	Filters    SearchFiltersResponse `json:"filters"`
	ZipCodes   []string              `json:"zipCodes"`
	Pagination PageResponse          `json:"pagination"`
	ResultIDs  []string              `json:"resultIds"`
	Dogs       []DogResponse         `json:"dogs"`
	Status     string                `json:"status"`
	Error      string                `json:"error,omitempty"`
	Generation uint64                `json:"generation"`
}

// BreedsResponse catálogo de razas ordenado.
type BreedsResponse struct {
	Breeds []string `json:"breeds"`
}
