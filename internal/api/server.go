package api

import (
	"fmt"
	"log"
	"net/http"

	"vokzal/internal/config"
	"vokzal/internal/database"
	"vokzal/internal/handlers"
	"vokzal/internal/messaging"
	"vokzal/internal/middleware"
	"vokzal/internal/repository"
	"vokzal/internal/search"
	"vokzal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP API together
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer connects the infrastructure and builds the router
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	var searchClient *search.Client
	if cfg.Elasticsearch.Enabled {
		searchClient, err = search.NewClient(cfg.Elasticsearch)
		if err != nil {
			// The departure board falls back to Postgres without the index.
			log.Printf("Failed to connect to Elasticsearch, continuing without search index: %v", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, searchClient, cfg.BookingTTL)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	{
		destinations := api.Group("/destinations")
		{
			destinations.POST("", h.CreateDestination)
			destinations.GET("", h.ListDestinations)
		}

		busModels := api.Group("/bus-models")
		{
			busModels.POST("", h.CreateBusModel)
			busModels.GET("", h.ListBusModels)
		}

		buses := api.Group("/buses")
		{
			buses.POST("", h.CreateBus)
			buses.GET("", h.ListBuses)
		}

		routes := api.Group("/routes")
		{
			routes.POST("", h.CreateRoute)
			routes.GET("", h.ListRoutes)
		}

		api.GET("/fuel-price", h.GetFuelPrice)
		api.PUT("/fuel-price", h.SetFuelPrice)

		trips := api.Group("/trips")
		{
			trips.GET("", h.ListTrips)
			trips.POST("/generate", h.GenerateTrips)
			trips.GET("/:id/seats", h.GetAvailableSeats)
			trips.GET("/:id/quote", h.GetFareQuote)
		}

		tickets := api.Group("/tickets")
		{
			tickets.POST("", h.BookTicket)
			tickets.POST("/sweep", h.SweepExpiredTickets)
			tickets.GET("/:number", h.GetTicket)
			tickets.POST("/:number/confirm", h.ConfirmTicket)
			tickets.POST("/:number/cancel", h.CancelTicket)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "vokzal-api",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes the infrastructure connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
			return err
		}
	}

	return nil
}
