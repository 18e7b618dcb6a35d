package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/SJellen/fetch-rewards/internal/application/auth"
	"github.com/SJellen/fetch-rewards/internal/application/favorites"
	"github.com/SJellen/fetch-rewards/internal/application/geo"
	"github.com/SJellen/fetch-rewards/internal/application/search"
	"github.com/SJellen/fetch-rewards/internal/infrastructure/catalog"
	"github.com/SJellen/fetch-rewards/internal/infrastructure/fetch"
	"github.com/SJellen/fetch-rewards/internal/infrastructure/localstore"
	httpRouter "github.com/SJellen/fetch-rewards/internal/interfaces/http"
	"github.com/SJellen/fetch-rewards/pkg/config"
	"github.com/SJellen/fetch-rewards/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("catalog", cfg.Catalog.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()

	store, err := localstore.NewFileStore(cfg.Storage.Path, log.Component("localstore"))
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("almacenamiento local")
	}

	fetchClient, err := fetch.New(fetch.Config{
		BaseURL:        cfg.Catalog.BaseURL,
		Timeout:        cfg.Catalog.Timeout,
		MaxAttempts:    cfg.Retry.MaxAttempts,
		MaxRateLimited: cfg.Retry.MaxRateLimited,
		BaseDelay:      cfg.Retry.BaseDelay,
	}, fetch.WithLogger(log.Component("fetch")))
	if err != nil {
		log.Fatal().Err(err).Msg("cliente del catálogo")
	}
	catalogClient := catalog.New(fetchClient)

	resolver := geo.NewResolver(catalogClient, geo.Config{SearchCap: cfg.Geo.LocationSearchCap}, log.Component("geo"))
	favoritesStore := favorites.NewStore(ctx, localstore.NewFavoritesRepository(store), catalogClient, log.Component("favorites"))
	orchestrator := search.NewOrchestrator(catalogClient, resolver, favoritesStore, cfg.Search.PageSize, log.Component("search"))
	sessionUC := auth.NewSessionUseCase(catalogClient, localstore.NewSessionRepository(store), favoritesStore, orchestrator, log.Component("session"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 90,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fetch Rewards API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC: sessionUC,
		Search:    orchestrator,
		Favorites: favoritesStore,
		Geo:       resolver,
		Service:   cfg.App.Name,
		Log:       log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
