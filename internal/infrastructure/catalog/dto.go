package catalog

import "github.com/SJellen/fetch-rewards/internal/domain/entity"

// ── Estructuras del protocolo del catálogo remoto ─────────────────────────────

type loginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type dogPayload struct {
	ID      string `json:"id"`
	Img     string `json:"img"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	ZipCode string `json:"zip_code"`
	Breed   string `json:"breed"`
}

func (d dogPayload) toEntity() entity.Dog {
	return entity.Dog{
		ID:       d.ID,
		Name:     d.Name,
		Breed:    d.Breed,
		Age:      d.Age,
		ZipCode:  d.ZipCode,
		ImageURL: d.Img,
	}
}

type searchPayload struct {
	ResultIDs []string `json:"resultIds"`
	Total     int      `json:"total"`
	Next      string   `json:"next,omitempty"`
	Prev      string   `json:"prev,omitempty"`
}

type matchPayload struct {
	Match string `json:"match"`
}

type locationPayload struct {
	ZipCode   string  `json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	County    string  `json:"county"`
}

func (l locationPayload) toEntity() entity.Location {
	return entity.Location{
		ZipCode:   l.ZipCode,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		City:      l.City,
		State:     l.State,
		County:    l.County,
	}
}

type coordinatesPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func newCoordinatesPayload(c entity.Coordinates) coordinatesPayload {
	return coordinatesPayload{Lat: c.Lat, Lon: c.Lon}
}

type boundingBoxPayload struct {
	Top    coordinatesPayload `json:"top"`
	Left   coordinatesPayload `json:"left"`
	Bottom coordinatesPayload `json:"bottom"`
	Right  coordinatesPayload `json:"right"`
}

type locationSearchRequest struct {
	City           string              `json:"city,omitempty"`
	States         []string            `json:"states,omitempty"`
	GeoBoundingBox *boundingBoxPayload `json:"geoBoundingBox,omitempty"`
	Size           int                 `json:"size,omitempty"`
	From           int                 `json:"from,omitempty"`
}

func newLocationSearchRequest(q entity.LocationSearch) locationSearchRequest {
	req := locationSearchRequest{
		City:   q.City,
		States: q.States,
		Size:   q.Size,
		From:   q.From,
	}
	if box := q.GeoBoundingBox; box != nil {
		req.GeoBoundingBox = &boundingBoxPayload{
			Top:    newCoordinatesPayload(box.Top),
			Left:   newCoordinatesPayload(box.Left),
			Bottom: newCoordinatesPayload(box.Bottom),
			Right:  newCoordinatesPayload(box.Right),
		}
	}
	return req
}

type locationSearchPayload struct {
	Results []locationPayload `json:"results"`
	Total   int               `json:"total"`
}
