package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/elegantshop/storefront-backend/internal/cart"
	"github.com/elegantshop/storefront-backend/internal/checkout"
	"github.com/elegantshop/storefront-backend/internal/config"
	"github.com/elegantshop/storefront-backend/internal/coupon"
	"github.com/elegantshop/storefront-backend/internal/order"
	"github.com/elegantshop/storefront-backend/internal/product"
	"github.com/elegantshop/storefront-backend/internal/shipping"
	"github.com/elegantshop/storefront-backend/internal/storage"
)

// main wires dependencies and starts the HTTP server. With no database
// configured everything runs on the in-memory implementations.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	app.Use(cors.New())

	var (
		store       storage.Store
		productRepo product.Repository
		orderRepo   order.Repository
	)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("could not open database: %v", err)
		}
		defer db.Close()

		pgStore := storage.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(); err != nil {
			log.Fatalf("could not prepare state table: %v", err)
		}
		pgOrders := order.NewPostgresRepository(db)
		if err := pgOrders.EnsureSchema(); err != nil {
			log.Fatalf("could not prepare orders table: %v", err)
		}

		store = pgStore
		orderRepo = pgOrders
		productRepo = product.NewPostgresRepository(db)
	} else {
		store = storage.NewMemoryStore()
		orderRepo = order.NewInMemoryRepository()
		productRepo = product.NewInMemoryRepository(product.DefaultCatalog())
	}

	engine := &cart.Engine{
		TaxRate:               cfg.TaxRate,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		MaxQuantity:           cfg.MaxQuantity,
	}
	registry := coupon.DefaultRegistry()
	catalog := shipping.DefaultCatalog()

	productService := product.NewService(productRepo)
	cartService := cart.NewService(engine, registry, catalog, productService, store)
	checkoutService := checkout.NewService(cartService, orderRepo, store)

	product.NewHandler(productService).RegisterRoutes(app)
	shipping.NewHandler(catalog).RegisterRoutes(app)
	cart.NewHandler(cartService).RegisterRoutes(app)
	checkout.NewHandler(checkoutService).RegisterRoutes(app)
	order.NewHandler(orderRepo, store).RegisterRoutes(app)

	log.Printf("starting storefront API on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
