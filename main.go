package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jfdeev/reflora/config"
	"github.com/Jfdeev/reflora/controllers"
	"github.com/Jfdeev/reflora/ingest"
	"github.com/Jfdeev/reflora/ownership"
)

func main() {
	configDir := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	thresholds, err := cfg.ThresholdTable()
	if err != nil {
		log.Fatalf("Invalid threshold configuration: %v", err)
	}

	db, err := config.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	guard := ownership.NewGuard(db)
	handler := controllers.NewHandler(db, guard, ingest.New(db, thresholds), cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: controllers.SetupRouter(handler),
	}

	go func() {
		log.Printf("Listening on %s (%s)", srv.Addr, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server stopped")
}
