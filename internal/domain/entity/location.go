package entity

// Location representa un código postal con sus coordenadas.
// DistanceMiles solo se llena durante la resolución geográfica (distancia al punto de referencia).
type Location struct {
	ZipCode       string
	Latitude      float64
	Longitude     float64
	City          string
	State         string
	County        string
	DistanceMiles float64
}

// Coordinates par lat/lon en grados decimales.
type Coordinates struct {
	Lat float64
	Lon float64
}

// GeoBoundingBox caja usada por /locations/search. Cada borde se expresa como una coordenada.
type GeoBoundingBox struct {
	Top    Coordinates
	Left   Coordinates
	Bottom Coordinates
	Right  Coordinates
}

// LocationSearch parámetros de búsqueda de ubicaciones: caja geográfica, ciudad o estados.
type LocationSearch struct {
	City           string
	States         []string
	GeoBoundingBox *GeoBoundingBox
	Size           int
	From           int
}

// LocationPage resultado paginado de /locations/search.
type LocationPage struct {
	Results []Location
	Total   int
}

// MapPreview vista de mapa alrededor de un código postal (ficha de favoritos).
type MapPreview struct {
	ZipCode  string
	Center   Coordinates
	Geohash  string
	MinLat   float64
	MinLon   float64
	MaxLat   float64
	MaxLon   float64
	EmbedURL string
}

// ValidZipCode código postal de 5 dígitos.
func ValidZipCode(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for i := 0; i < len(zip); i++ {
		if zip[i] < '0' || zip[i] > '9' {
			return false
		}
	}
	return true
}
