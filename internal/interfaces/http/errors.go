package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/domain"
	"github.com/SJellen/fetch-rewards/internal/infrastructure/fetch"
)

// respondError traduce errores de dominio y de transporte a status + dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidAgeRange):
		return fiber.StatusBadRequest, "INVALID_AGE_RANGE", err.Error()
	case errors.Is(err, domain.ErrUnknownBreed):
		return fiber.StatusBadRequest, "UNKNOWN_BREED", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrPageOutOfRange):
		return fiber.StatusConflict, "PAGE_OUT_OF_RANGE", err.Error()
	case errors.Is(err, domain.ErrSearchInFlight):
		return fiber.StatusConflict, "SEARCH_IN_FLIGHT", err.Error()
	case errors.Is(err, domain.ErrNoFavorites):
		return fiber.StatusUnprocessableEntity, "NO_FAVORITES", err.Error()
	case errors.Is(err, domain.ErrNotLoggedIn), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrMatchFailed):
		return fiber.StatusBadGateway, "MATCH_FAILED", err.Error()
	}

	var reqErr *fetch.RequestError
	if errors.As(err, &reqErr) {
		return fiber.StatusBadGateway, "UPSTREAM", reqErr.Message()
	}
	return fiber.StatusInternalServerError, "INTERNAL", err.Error()
}
