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

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/Mokshithanaidu/goreservee/internal/adapter/handler"
	filestore "github.com/Mokshithanaidu/goreservee/internal/adapter/repository/file"
	pgstore "github.com/Mokshithanaidu/goreservee/internal/adapter/repository/postgres"
	"github.com/Mokshithanaidu/goreservee/internal/core/ports"
	"github.com/Mokshithanaidu/goreservee/internal/core/services"
	"github.com/Mokshithanaidu/goreservee/internal/platform/bootstrap"
	"github.com/Mokshithanaidu/goreservee/internal/platform/database"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newSnapshotStore(ctx context.Context) (ports.SnapshotStore, func(), error) {
	switch driver := getenv("STORAGE_DRIVER", "file"); driver {
	case "file":
		path := getenv("SNAPSHOT_PATH", "data/reservations.json")
		log.Printf("Using file snapshot store at %s", path)
		return filestore.NewSnapshotStore(path), func() {}, nil

	case "postgres":
		cfg := database.Config{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", ""),
			DBName:   getenv("DB_NAME", "goreservee"),
		}

		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, err
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		store := pgstore.NewSnapshotStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return store, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment.")
	}

	ctx := context.Background()

	store, closeStore, err := newSnapshotStore(ctx)
	if err != nil {
		log.Fatalf("Failed to set up snapshot store: %v", err)
	}
	defer closeStore()

	var redisClient *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		log.Printf("Connecting to Redis at %s...", addr)
		redisClient = redis.NewClient(&redis.Options{Addr: addr, DB: 0})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Redis connected successfully!")
	} else {
		log.Println("REDIS_ADDR not set, seat cache disabled.")
	}

	svc := services.NewReservationService(store, redisClient, bootstrap.SampleFleet())
	svc.Restore(ctx)

	reservationHandler := handler.NewReservationHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/users", reservationHandler.RegisterUser)
	mux.HandleFunc("/users/get", reservationHandler.GetUser)
	mux.HandleFunc("/transports", reservationHandler.Transports)
	mux.HandleFunc("/seats", reservationHandler.Seats)
	mux.HandleFunc("/tickets", reservationHandler.BookTicket)
	mux.HandleFunc("/tickets/cancel", reservationHandler.CancelTicket)
	mux.HandleFunc("/tickets/get", reservationHandler.GetTicket)
	mux.HandleFunc("/bookings", reservationHandler.UserBookings)

	server := &http.Server{
		Addr:         ":" + getenv("PORT", "8080"),
		Handler:      handler.RequestID(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
