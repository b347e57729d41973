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
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/storefront-labs/shop-backend/internal/cart"
	"github.com/storefront-labs/shop-backend/internal/checkout"
	"github.com/storefront-labs/shop-backend/internal/config"
	"github.com/storefront-labs/shop-backend/internal/inventory"
	"github.com/storefront-labs/shop-backend/internal/logger"
	"github.com/storefront-labs/shop-backend/internal/product"
	"github.com/storefront-labs/shop-backend/internal/provisioning"
	"github.com/storefront-labs/shop-backend/internal/purchase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "product-service", Level: cfg.LogLevel})

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	mustEnsureSchema(db)

	app := fiber.New()
	app.Use(cors.New())

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	ledger := inventory.NewPostgresLedger(db)
	product.NewHandler(productService, ledger).RegisterRoutes(app)

	tokens := provisioning.NewTokenService(cfg.JWTSecret)
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, productRepo)
	cart.NewHandler(cartService, tokens).RegisterRoutes(app)

	purchaseRepo := purchase.NewPostgresRepository(db)
	recorder := purchase.NewRecorder(purchaseRepo)
	purchase.NewHandler(recorder).RegisterRoutes(app)

	orchestrator := checkout.NewOrchestrator(cartService, ledger, recorder)
	checkout.NewHandler(orchestrator).RegisterRoutes(app)

	go func() {
		log.Info("starting product service", "addr", cfg.Addr)
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
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
            uid TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            price NUMERIC NOT NULL CHECK (price >= 0),
            quantity INT NOT NULL CHECK (quantity >= 0),
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            deleted_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            uid TEXT PRIMARY KEY,
            owner TEXT NOT NULL UNIQUE,
            products JSONB NOT NULL DEFAULT '[]',
            total_price NUMERIC NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            uid TEXT PRIMARY KEY,
            owner TEXT NOT NULL,
            products JSONB NOT NULL,
            product_ids TEXT[] NOT NULL DEFAULT '{}',
            total_amount NUMERIC NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
