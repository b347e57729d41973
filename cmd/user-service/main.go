package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/storefront-labs/shop-backend/internal/config"
	"github.com/storefront-labs/shop-backend/internal/logger"
	"github.com/storefront-labs/shop-backend/internal/provisioning"
	"github.com/storefront-labs/shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "user-service", Level: cfg.LogLevel})

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	mustEnsureSchema(db)

	app := fiber.New()
	app.Use(cors.New())

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)
	userHandler.RegisterPublicRoutes(app)

	tokens := provisioning.NewTokenService(cfg.JWTSecret)
	carts := provisioning.NewCartClient(cfg.ProductServiceURL, cfg.ProvisionTimeout)
	saga := provisioning.NewSaga(userService, tokens, carts, log)
	provisioning.NewHandler(saga).RegisterRoutes(app)

	app.Use(jwtware.New(jwtware.Config{SigningKey: []byte(cfg.JWTSecret)}))
	userHandler.RegisterProtectedRoutes(app)

	go func() {
		log.Info("starting user service", "addr", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func mustEnsureSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        email TEXT NOT NULL,
        password TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL,
        deleted_at TIMESTAMPTZ
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS users_active_email
        ON users (lower(email)) WHERE deleted_at IS NULL`); err != nil {
		panic(err)
	}
}
