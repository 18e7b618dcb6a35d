package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/application/search"
)

// SearchHandler expone el orquestador de búsqueda a la UI.
type SearchHandler struct {
	orchestrator *search.Orchestrator
}

// NewSearchHandler construye el handler de búsqueda.
func NewSearchHandler(o *search.Orchestrator) *SearchHandler {
	return &SearchHandler{orchestrator: o}
}

// State godoc
// @Summary      Estado actual de la búsqueda
// @Tags         search
// @Produce      json
// @Success      200  {object}  dto.SearchStateResponse
// @Router       /api/search [get]
func (h *SearchHandler) State(c *fiber.Ctx) error {
	return c.JSON(toStateResponse(h.orchestrator.Snapshot()))
}

// Search godoc
// @Summary      Reemplazar filtros y buscar
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchRequest  true  "breed, ageMin, ageMax, zipCodes, location, area"
// @Success      200   {object}  dto.SearchStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/search [post]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.respond(c)(h.orchestrator.Search(c.UserContext(), toFilters(in)))
}

// SetBreed godoc
// @Summary      Filtrar por raza
// @Description  Vacío quita el filtro. La raza debe existir en el catálogo (sin distinguir mayúsculas).
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BreedRequest  true  "breed"
// @Success      200   {object}  dto.SearchStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/search/breed [put]
func (h *SearchHandler) SetBreed(c *fiber.Ctx) error {
	var in dto.BreedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.respond(c)(h.orchestrator.SetBreed(c.UserContext(), in.Breed))
}

// SetAgeRange godoc
// @Summary      Filtrar por rango de edad
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AgeRangeRequest  true  "ageMin, ageMax"
// @Success      200   {object}  dto.SearchStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/search/age [put]
func (h *SearchHandler) SetAgeRange(c *fiber.Ctx) error {
	var in dto.AgeRangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return h.respond(c)(h.orchestrator.SetAgeRange(c.UserContext(), in.AgeMin, in.AgeMax))
}

// SetLocation godoc
// @Summary      Restringir por ubicación
// @Description  zipCodes explícitos, zipCode + radiusMiles, o city/states. Cuerpo vacío quita la restricción.
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LocationRequest  true  "zipCodes | zipCode, radiusMiles | city, states"
// @Success      200   {object}  dto.SearchStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/search/location [put]
func (h *SearchHandler) SetLocation(c *fiber.Ctx) error {
	var in dto.LocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ctx := c.UserContext()
	switch {
	case len(in.ZipCodes) > 0:
		return h.respond(c)(h.orchestrator.SetZipCodes(ctx, in.ZipCodes))
	case in.ZipCode != "":
		return h.respond(c)(h.orchestrator.SetLocation(ctx, in.ZipCode, in.RadiusMiles))
	case in.City != "" || len(in.States) > 0:
		return h.respond(c)(h.orchestrator.SetArea(ctx, in.City, in.States))
	default:
		return h.respond(c)(h.orchestrator.ClearLocation(ctx))
	}
}

// ToggleSort godoc
// @Summary      Invertir el orden por nombre
// @Tags         search
// @Produce      json
// @Success      200  {object}  dto.SearchStateResponse
// @Router       /api/search/sort [post]
func (h *SearchHandler) ToggleSort(c *fiber.Ctx) error {
	return h.respond(c)(h.orchestrator.ToggleSort(c.UserContext()))
}

// NextPage godoc
// @Summary      Página siguiente
// @Tags         search
// @Produce      json
// @Success      200  {object}  dto.SearchStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/search/page/next [post]
func (h *SearchHandler) NextPage(c *fiber.Ctx) error {
	return h.respond(c)(h.orchestrator.NextPage(c.UserContext()))
}

// PreviousPage godoc
// @Summary      Página anterior
// @Tags         search
// @Produce      json
// @Success      200  {object}  dto.SearchStateResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/search/page/previous [post]
func (h *SearchHandler) PreviousPage(c *fiber.Ctx) error {
	return h.respond(c)(h.orchestrator.PreviousPage(c.UserContext()))
}

// SetPage godoc
// @Summary      Saltar a una página
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PageRequest  true  "page"
// @Success      200   {object}  dto.SearchStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/search/page [put]
func (h *SearchHandler) SetPage(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Page < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "page debe ser >= 1"})
	}
	return h.respond(c)(h.orchestrator.SetPage(c.UserContext(), in.Page))
}

// Breeds godoc
// @Summary      Catálogo de razas
// @Tags         search
// @Produce      json
// @Success      200  {object}  dto.BreedsResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/breeds [get]
func (h *SearchHandler) Breeds(c *fiber.Ctx) error {
	breeds, err := h.orchestrator.Breeds(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BreedsResponse{Breeds: breeds})
}

func (h *SearchHandler) respond(c *fiber.Ctx) func(search.State, error) error {
	return func(st search.State, err error) error {
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toStateResponse(st))
	}
}
