package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vokzal/internal/config"
	"vokzal/internal/database"
	"vokzal/internal/jobs"
	"vokzal/internal/logger"
	"vokzal/internal/messaging"
	"vokzal/internal/repository"
	"vokzal/internal/search"
	"vokzal/internal/service"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: jobs <command> [flags]

Commands:
  generate-trips   Create trips for a date from the route schedules
  sweep-expired    Cancel reservations past the booking grace period

Flags:
  -date YYYY-MM-DD  Target date for generate-trips (default: tomorrow)
  -loop             Keep running on the configured interval instead of once
`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]

	flags := flag.NewFlagSet(command, flag.ExitOnError)
	dateArg := flags.String("date", "", "target date (YYYY-MM-DD)")
	loop := flags.Bool("loop", false, "run on the configured interval")
	flags.Parse(os.Args[2:])

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cfg.NATS.ClientID = "vokzal-jobs"
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsClient.Close()

	var searchClient *search.Client
	if cfg.Elasticsearch.Enabled {
		searchClient, err = search.NewClient(cfg.Elasticsearch)
		if err != nil {
			log.Printf("Failed to connect to Elasticsearch, trips will not be indexed: %v", err)
			searchClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, searchClient, cfg.BookingTTL)

	ctx := context.Background()

	switch command {
	case "generate-trips":
		job := jobs.NewTripGenerationJob(services.Trips)

		var date time.Time
		if *dateArg != "" {
			date, err = time.Parse("2006-01-02", *dateArg)
			if err != nil {
				log.Fatalf("Invalid -date %q: %v", *dateArg, err)
			}
		}

		if *loop {
			job.Start(ctx, cfg.GenerateInterval)
			waitForSignal()
			job.Stop()
			return
		}

		if err := job.Run(ctx, date); err != nil {
			os.Exit(1)
		}

	case "sweep-expired":
		job := jobs.NewBookingExpirationJob(services.Tickets)

		if *loop {
			job.Start(ctx, cfg.SweepInterval)
			waitForSignal()
			job.Stop()
			return
		}

		if err := job.Run(ctx); err != nil {
			os.Exit(1)
		}

	default:
		usage()
	}
}

func waitForSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down jobs...")
}
