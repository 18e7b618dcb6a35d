package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SJellen/fetch-rewards/internal/application/auth"
	"github.com/SJellen/fetch-rewards/internal/application/dto"
	"github.com/SJellen/fetch-rewards/internal/application/favorites"
	"github.com/SJellen/fetch-rewards/internal/application/geo"
	"github.com/SJellen/fetch-rewards/internal/application/search"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC *auth.SessionUseCase
	Search    *search.Orchestrator
	Favorites *favorites.Store
	Geo       *geo.Resolver
	Service   string
	Log       zerolog.Logger
}

// Router registra las rutas de la API local consumida por la UI.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.Service})
	})

	api := app.Group("/api", RequestID(), RequestLogger(deps.Log))

	// Sesión
	sessionHandler := NewSessionHandler(deps.SessionUC)
	session := api.Group("/session")
	session.Get("/", sessionHandler.Current)
	session.Post("/login", sessionHandler.Login)
	session.Post("/logout", sessionHandler.Logout)

	// Búsqueda
	searchHandler := NewSearchHandler(deps.Search)
	api.Get("/breeds", searchHandler.Breeds)
	searchGroup := api.Group("/search")
	searchGroup.Get("/", searchHandler.State)
	searchGroup.Post("/", searchHandler.Search)
	searchGroup.Put("/breed", searchHandler.SetBreed)
	searchGroup.Put("/age", searchHandler.SetAgeRange)
	searchGroup.Put("/location", searchHandler.SetLocation)
	searchGroup.Post("/sort", searchHandler.ToggleSort)
	searchGroup.Put("/page", searchHandler.SetPage)
	searchGroup.Post("/page/next", searchHandler.NextPage)
	searchGroup.Post("/page/previous", searchHandler.PreviousPage)

	// Favoritos
	favoritesHandler := NewFavoritesHandler(deps.Favorites)
	favs := api.Group("/favorites")
	favs.Get("/", favoritesHandler.List)
	favs.Delete("/", favoritesHandler.Clear)
	favs.Get("/dogs", favoritesHandler.Dogs)
	favs.Post("/match", favoritesHandler.Match)
	favs.Post("/:id/toggle", favoritesHandler.Toggle)

	// Ubicaciones
	locationHandler := NewLocationHandler(deps.Geo)
	api.Get("/locations/:zip/preview", locationHandler.Preview)
}
