package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/urbanphys/comfortsim/internal/api"
	"github.com/urbanphys/comfortsim/internal/config"
	"github.com/urbanphys/comfortsim/internal/database"
	"github.com/urbanphys/comfortsim/internal/scheduler"
	"github.com/urbanphys/comfortsim/internal/server"
	"github.com/urbanphys/comfortsim/internal/simulation"
)

// Command comfortsim provides an HTTP service for outdoor comfort
// simulations.
//
// The service supports:
//   - Building validated simulation requests over an EPW weather file and a
//     ground/shade material pair
//   - Running the external toolkit through its Python interpreter
//   - Reusing stored results for already-simulated configurations
//   - Parsing annual daylight result files (illuminance + sun-up-hours)
//   - Prometheus metrics
//
// Usage:
//
//	comfortsim [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
//	-cache-size int
//	      size of the LRU response cache (default 1000)
//	-rate-limit float
//	      rate limit in requests per second (default 5)
//	-rate-limit-burst int
//	      maximum burst size for rate limiting (default 10)
func main() {
	// Parse command line flags
	flags := parseFlags()

	// Load configuration
	appConfig, err := config.Load(flags.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Construct connection string from config
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		appConfig.Database.Host,
		appConfig.Database.Port,
		appConfig.Database.User,
		appConfig.Database.Password,
		appConfig.Database.Name,
		appConfig.Database.SSLMode,
	)

	// Initialize structured logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithFields(logrus.Fields{
		"port": appConfig.Server.Port,
	}).Info("Starting server")

	// Create repository using the connection string from config.yaml
	repo, err := database.NewPostgresRepo(connStr)
	if err != nil {
		logger.Fatalf("Failed to create repository: %v", err)
	}

	// Create the execution environment for the external toolkit
	env, err := simulation.NewEnvironment(
		appConfig.Simulation.Interpreter,
		appConfig.Simulation.PackagesDir,
		appConfig.Simulation.WorkDir,
	)
	if err != nil {
		logger.Fatalf("Failed to create execution environment: %v", err)
	}

	// Create a context that will be canceled on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize components
	bridge := simulation.NewBridge(env, logger)
	runner := api.NewSimulationRunner(bridge, repo, logger)
	sweeper := scheduler.NewSweeper(
		env,
		logger,
		appConfig.Simulation.SweepSchedule,
		time.Duration(appConfig.Simulation.ScratchTTL)*time.Hour,
	)

	// Create and setup the HTTP server
	serverConfig := server.ServerConfig{
		CacheSize:      flags.CacheSize,
		RateLimit:      flags.RateLimit,
		RateLimitBurst: flags.RateLimitBurst,
	}

	handler, err := server.SetupServer(runner, serverConfig, logger, prometheus.NewRegistry())
	if err != nil {
		logger.Fatalf("Failed to setup server: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.Port),
		Handler: handler,
	}

	// Start background services
	errChan := make(chan error, 1)

	// Start the scratch-directory sweeper
	go func() {
		if err := sweeper.Start(); err != nil {
			errChan <- fmt.Errorf("sweeper error: %w", err)
		}
	}()

	// Handle shutdown gracefully
	go handleShutdown(ctx, srv, logger, repo, sweeper, env)

	logger.WithFields(logrus.Fields{
		"port": appConfig.Server.Port,
	}).Info("Starting HTTP server")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for any error
	if err := <-errChan; err != nil {
		logger.Fatalf("Service error: %v", err)
	}
}

type Flags struct {
	ConfigPath     string
	CacheSize      int
	RateLimit      float64
	RateLimitBurst int
}

func parseFlags() *Flags {
	flags := &Flags{}

	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "Path to the config file")
	flag.IntVar(&flags.CacheSize, "cache-size", 1000, "Size of the LRU response cache")
	flag.Float64Var(&flags.RateLimit, "rate-limit", 5.0, "Rate limit in requests per second")
	flag.IntVar(&flags.RateLimitBurst, "rate-limit-burst", 10, "Maximum burst size for rate limiting")

	flag.Parse()

	return flags
}

// Handle graceful shutdown
func handleShutdown(
	ctx context.Context,
	srv *http.Server,
	logger *logrus.Logger,
	repo database.SimulationRepository,
	sweeper *scheduler.Sweeper,
	env *simulation.Environment,
) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Println("Context canceled, initiating shutdown")
	case sig := <-sigChan:
		logger.Printf("Received signal %v, initiating shutdown", sig)
	}

	// Perform graceful shutdown
	logger.Println("Gracefully stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown error: %v", err)
	}
	logger.Println("Server stopped")

	// Stop the sweeper and clean up the environment and repository
	sweeper.Stop()
	if err := env.Dispose(); err != nil {
		logger.Errorf("Failed to dispose execution environment: %v", err)
	}
	repo.Close()
	os.Exit(0)
}
