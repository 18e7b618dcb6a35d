package dto

// PageResponse metadatos de página de la búsqueda.
type PageResponse struct {
	Page        int    `json:"page"`
	PageSize    int    `json:"pageSize"`
	TotalPages  int    `json:"totalPages"`
	Total       int    `json:"total"`
	Sort        string `json:"sort"`
	HasNext     bool   `json:"hasNext"`
	HasPrevious bool   `json:"hasPrevious"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio local.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
