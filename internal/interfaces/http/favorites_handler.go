package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/application/favorites"
)

// FavoritesHandler favoritos y match.
type FavoritesHandler struct {
	store *favorites.Store
}

// NewFavoritesHandler construye el handler de favoritos.
func NewFavoritesHandler(store *favorites.Store) *FavoritesHandler {
	return &FavoritesHandler{store: store}
}

// List godoc
// @Summary      Ids favoritos
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  dto.FavoritesResponse
// @Router       /api/favorites [get]
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	ids := h.store.Snapshot()
	return c.JSON(dto.FavoritesResponse{IDs: ids, Count: len(ids)})
}

// Dogs godoc
// @Summary      Registros de los favoritos
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  dto.FavoriteDogsResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/favorites/dogs [get]
func (h *FavoritesHandler) Dogs(c *fiber.Ctx) error {
	dogs, err := h.store.FavoriteDogs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FavoriteDogsResponse{Dogs: toDogResponses(dogs)})
}

// Toggle godoc
// @Summary      Alternar favorito
// @Tags         favorites
// @Produce      json
// @Param        id   path      string  true  "ID del perro"
// @Success      200  {object}  dto.ToggleFavoriteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/favorites/{id}/toggle [post]
func (h *FavoritesHandler) Toggle(c *fiber.Ctx) error {
	// el store conserva el id: se copia fuera del buffer reutilizado por fasthttp
	id := utils.CopyString(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requerido"})
	}
	isFavorite, err := h.store.Toggle(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToggleFavoriteResponse{ID: id, IsFavorite: isFavorite, Count: h.store.Len()})
}

// Clear godoc
// @Summary      Vaciar favoritos
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  dto.FavoritesResponse
// @Router       /api/favorites [delete]
func (h *FavoritesHandler) Clear(c *fiber.Ctx) error {
	h.store.Clear(c.UserContext())
	return c.JSON(dto.FavoritesResponse{IDs: []string{}, Count: 0})
}

// Match godoc
// @Summary      Pedir un match entre los favoritos
// @Tags         favorites
// @Produce      json
// @Success      200  {object}  dto.MatchResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/favorites/match [post]
func (h *FavoritesHandler) Match(c *fiber.Ctx) error {
	dog, err := h.store.RequestMatch(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MatchResponse{Dog: toDogResponse(dog)})
}
