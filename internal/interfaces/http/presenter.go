package http

import (
	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/application/search"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
)

func toDogResponse(d entity.Dog) dto.DogResponse {
	return dto.DogResponse{
		ID:         d.ID,
		Name:       d.Name,
		Breed:      d.Breed,
		Age:        d.Age,
		ZipCode:    d.ZipCode,
		Img:        d.ImageURL,
		IsFavorite: d.IsFavorite,
	}
}

func toDogResponses(dogs []entity.Dog) []dto.DogResponse {
	out := make([]dto.DogResponse, 0, len(dogs))
	for _, d := range dogs {
		out = append(out, toDogResponse(d))
	}
	return out
}

func toStateResponse(st search.State) dto.SearchStateResponse {
	f := dto.SearchFiltersResponse{
		Breed:    st.Filters.Breed,
		AgeMin:   st.Filters.AgeMin,
		AgeMax:   st.Filters.AgeMax,
		ZipCodes: st.Filters.ZipCodes,
	}
	if st.Filters.Location != nil {
		f.Location = &dto.LocationFilterRequest{
			ZipCode:     st.Filters.Location.ZipCode,
			RadiusMiles: st.Filters.Location.RadiusMiles,
		}
	}
	if st.Filters.Area != nil {
		f.Area = &dto.AreaFilterRequest{City: st.Filters.Area.City, States: st.Filters.Area.States}
	}

	zips := st.ZipCodes
	if zips == nil {
		zips = []string{}
	}
	return dto.SearchStateResponse{
		Filters:  f,
		ZipCodes: zips,
		Pagination: dto.PageResponse{
			Page:        st.Page,
			PageSize:    st.PageSize,
			TotalPages:  st.TotalPages,
			Total:       st.Total,
			Sort:        string(st.Sort),
			HasNext:     st.HasNext,
			HasPrevious: st.HasPrevious,
		},
		ResultIDs:  st.ResultIDs,
		Dogs:       toDogResponses(st.Dogs),
		Status:     string(st.Status),
		Error:      st.Error,
		Generation: st.Generation,
	}
}

func toFilters(in dto.SearchRequest) search.Filters {
	f := search.Filters{
		Breed:    in.Breed,
		AgeMin:   in.AgeMin,
		AgeMax:   in.AgeMax,
		ZipCodes: in.ZipCodes,
	}
	if in.Location != nil {
		f.Location = &search.LocationFilter{ZipCode: in.Location.ZipCode, RadiusMiles: in.Location.RadiusMiles}
	}
	if in.Area != nil {
		f.Area = &search.AreaFilter{City: in.Area.City, States: in.Area.States}
	}
	return f
}

func toPreviewResponse(p entity.MapPreview) dto.MapPreviewResponse {
	return dto.MapPreviewResponse{
		ZipCode:  p.ZipCode,
		Lat:      p.Center.Lat,
		Lon:      p.Center.Lon,
		Geohash:  p.Geohash,
		MinLat:   p.MinLat,
		MinLon:   p.MinLon,
		MaxLat:   p.MaxLat,
		MaxLon:   p.MaxLon,
		EmbedURL: p.EmbedURL,
	}
}
