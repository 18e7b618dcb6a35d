package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/application/geo"
	"github.com/SJellen/fetch-rewards/internal/domain/entity"
)

// LocationHandler vistas de mapa por código postal.
type LocationHandler struct {
	resolver *geo.Resolver
}

// NewLocationHandler construye el handler de ubicaciones.
func NewLocationHandler(r *geo.Resolver) *LocationHandler {
	return &LocationHandler{resolver: r}
}

// Preview godoc
// @Summary      Vista de mapa alrededor de un código postal
// @Tags         locations
// @Produce      json
// @Param        zip  path      string  true  "código postal de 5 dígitos"
// @Success      200  {object}  dto.MapPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{zip}/preview [get]
func (h *LocationHandler) Preview(c *fiber.Ctx) error {
	zip := c.Params("zip")
	if !entity.ValidZipCode(zip) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código postal de 5 dígitos requerido"})
	}
	preview, err := h.resolver.Preview(c.UserContext(), zip)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPreviewResponse(preview))
}
