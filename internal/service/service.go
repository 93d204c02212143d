package service

import (
	"time"

	"vokzal/internal/messaging"
	"vokzal/internal/repository"
	"vokzal/internal/search"
)

type Services struct {
	Catalog *CatalogService
	Fuel    *FuelService
	Trips   *TripService
	Tickets *TicketService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, searchClient *search.Client, bookingTTL time.Duration) *Services {
	return &Services{
		Catalog: NewCatalogService(repos.Fleet, repos.Routes),
		Fuel:    NewFuelService(repos.Fuel),
		Trips:   NewTripService(repos.Routes, repos.Fleet, repos.Trips, searchClient, natsClient),
		Tickets: NewTicketService(repos.Tickets, repos.Trips, repos.Fuel, natsClient, bookingTTL),
	}
}
