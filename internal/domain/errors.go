package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("sesión no autorizada por el catálogo remoto")
	ErrNotLoggedIn     = errors.New("no hay sesión activa")
	ErrInvalidAgeRange = errors.New("rango de edad inválido: se requiere 0 <= ageMin <= ageMax")
	ErrUnknownBreed    = errors.New("raza no pertenece al catálogo")
	ErrSearchInFlight  = errors.New("ya hay una búsqueda idéntica en curso")
	ErrPageOutOfRange  = errors.New("página fuera de rango")
	ErrNoFavorites     = errors.New("no hay favoritos para calcular un match")
	ErrMatchFailed     = errors.New("no se pudo obtener el match")
)
