package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/config"
	"github.com/bizli/geo-service/internal/delivery/http/handler"
	"github.com/bizli/geo-service/internal/delivery/http/middleware"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	geographyHandler *handler.GeographyHandler
	businessHandler  *handler.BusinessHandler
	selectionHandler *handler.SelectionHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	geographyHandler *handler.GeographyHandler,
	businessHandler *handler.BusinessHandler,
	selectionHandler *handler.SelectionHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Bizli Geo Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		geographyHandler: geographyHandler,
		businessHandler:  businessHandler,
		selectionHandler: selectionHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Geography routes
	geo := api.Group("/geo")
	geo.Get("/countries", s.geographyHandler.GetCountries)
	geo.Get("/countries/:id/states", s.geographyHandler.GetStates)
	geo.Get("/countries/:id/departments", s.geographyHandler.GetDepartmentsByCountry)
	geo.Get("/countries/:id/cities", s.geographyHandler.GetCitiesByCountry)
	geo.Get("/countries/:id/administrative-levels", s.geographyHandler.GetAdministrativeLevels)
	geo.Get("/states/:id/departments", s.geographyHandler.GetDepartments)
	geo.Get("/states/:id/cities", s.geographyHandler.GetCitiesByState)
	geo.Get("/departments/:id/cities", s.geographyHandler.GetCities)
	geo.Get("/cities/:id/neighborhoods", s.geographyHandler.GetNeighborhoods)
	geo.Post("/countries/:id/preload", s.geographyHandler.PreloadCountry)
	geo.Delete("/cache", s.geographyHandler.ClearCache)

	// Business routes
	api.Get("/businesses", s.businessHandler.GetByLocation)
	api.Post("/businesses/search", s.businessHandler.Search)

	// Location selection routes
	locations := api.Group("/locations")
	locations.Post("/resolve", s.selectionHandler.ResolvePosition)
	locations.Post("/hydrate", s.selectionHandler.HydrateSelection)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
