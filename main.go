package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "drowsiness-dashboard/internal/config"
	router "drowsiness-dashboard/internal/http"
	"drowsiness-dashboard/internal/repositories"
	"drowsiness-dashboard/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if err := env.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	trips := repositories.NewTripRecordRepository(db, env.DBTimeout)
	if env.AutoMigrate {
		created, err := trips.EnsureSchema(context.Background())
		if err != nil {
			log.Fatalf("Failed to prepare trip table: %v", err)
		}
		if created {
			log.Println("Created trip table")
		}
	}

	auth, err := services.NewAuthService(env.AdminUsername, env.AdminPassword, env.AdminPasswordHash, env.JWTSecret, env.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to configure login: %v", err)
	}

	r := router.NewRouter(env, router.Deps{Trips: trips, Auth: auth})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped.")
}
