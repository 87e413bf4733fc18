package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tallyhq/tally/internal/logging"
	"github.com/tallyhq/tally/internal/server"
	"github.com/tallyhq/tally/internal/tenant"
)

func main() {
	port := os.Getenv("TALLY_PORT")
	if port == "" {
		port = "8080"
	}

	dataDir := os.Getenv("TALLY_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	logger := logging.Setup(os.Getenv("TALLY_LOG_LEVEL"))

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	tenants := tenant.NewManager(dataDir, logger.With("component", "tenant"))
	defer tenants.Close()

	srv := server.New(tenants, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			srv.RateLimiter().Cleanup()
		}
	}()

	go func() {
		fmt.Printf("Tally running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
