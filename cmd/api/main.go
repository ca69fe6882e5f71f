package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sya-pos/possyncgo/internal/config"
	"github.com/sya-pos/possyncgo/internal/database"
	"github.com/sya-pos/possyncgo/internal/handlers"
	"github.com/sya-pos/possyncgo/internal/models"
	"github.com/sya-pos/possyncgo/internal/relay"
	"github.com/sya-pos/possyncgo/internal/sync"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-Migrate Schema (Critical for Zero-Config)
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.Tenant{},
		&models.Branch{},
		&models.Employee{},
		&models.Customer{},

		// Synced record kinds
		&models.Shift{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Expense{},
		&models.CashMovement{},
		&models.ScaleTamperLog{},
		&models.ScaleDisconnectionLog{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Start the realtime relay hub
	hub := relay.NewHub()
	go hub.Run()
	log.Println("✅ Relay: Hub started")

	// 5. Wire the sync ingestion service to the hub so replayed records
	// (e.g. offline tamper alerts) reach connected dashboards
	svc := sync.NewService(db, sync.NewResolver(db), hub)

	// 6. Set up HTTP router
	router := handlers.NewRouter(db, hub, svc, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server (%s) starting on port %s\n", cfg.Env, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	// Create context with timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
