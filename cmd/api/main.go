package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bookshop-service/cmd/api/book"
	"github.com/bookshop-service/cmd/api/database"
	bookhttp "github.com/bookshop-service/cmd/api/http"
	"github.com/bookshop-service/cmd/api/notifications"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	_ "github.com/lib/pq"
)

func main() {
	err := run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	//a missing .env file is fine, the environment may already be set:
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}

	//connect to db:
	connStr := os.Getenv("DATABASE_URL")
	dbObject, err := database.ConnectDb(connStr)
	if err != nil {
		return fmt.Errorf("connecting with db: %w", err)
	}

	defer dbObject.Close()

	//apply migrations:
	store := database.NewStore(dbObject)
	path := os.Getenv("DATABASE_MIGRATIONS_PATH")
	err = database.MigrationUp(store, path)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating: %w", err)
	}

	ntfy := notifications.NewNtfy(
		os.Getenv("NOTIFICATIONS_ENABLED") == "true",
		os.Getenv("NOTIFICATIONS_BASE_URL"),
		&http.Client{},
	)

	ntfyTimeout := 3 * time.Second
	if timeoutStr := os.Getenv("NOTIFICATIONS_TIMEOUT"); timeoutStr != "" { //This ENV must be written with a unit suffix, like seconds
		ntfyTimeout, err = time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("getting notifications timeout from env: %w", err)
		}
	}

	strict := os.Getenv("STRICT_VALIDATION") == "true"
	bookService := book.NewService(store, ntfy, ntfyTimeout, strict)
	bookHandler := bookhttp.NewBookHandler(bookService)

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("getting port from env: %w", err)
		}
	}

	//create and init http server:
	server := bookhttp.NewServer(bookhttp.ServerConfig{
		Port:      port,
		JWTSecret: os.Getenv("JWT_SECRET"),
	}, bookHandler)

	go func() (err error) {
		err = server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unexpected http server error: %w", err)
		}
		return nil
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	ctx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown error: %w", err)
	}
	log.Println("Graceful shutdown complete.")
	return err
}
