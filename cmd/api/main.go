package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/sokomarket/soko-backend/internal/cache"
	"github.com/sokomarket/soko-backend/internal/modules/catalog"
	"github.com/sokomarket/soko-backend/internal/modules/engagement"
	"github.com/sokomarket/soko-backend/internal/modules/marketplace"
	"github.com/sokomarket/soko-backend/internal/modules/promotion"
	"github.com/sokomarket/soko-backend/internal/modules/shop"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Tenants & Catalog ───────────────────────────────────
	shopRepo := shop.NewPostgresRepository(db)
	shopService := shop.NewService(shopRepo)
	shop.NewHandler(shopService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Promotions ──────────────────────────────────────────
	promotionRepo := promotion.NewPostgresRepository(db)
	promotionService := promotion.NewService(promotionRepo, catalogRepo)
	promotion.NewHandler(promotionService).RegisterRoutes(router)

	// ── Engagement ──────────────────────────────────────────
	engagementRepo := engagement.NewPostgresRepository(db)
	engagementService := engagement.NewService(engagementRepo)
	engagement.NewHandler(engagementService).RegisterRoutes(router)

	// ── Marketplace Discovery ───────────────────────────────
	var trendingCache marketplace.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		trendingCache = cache.New(rdb, "soko:", 5*time.Minute)
	}
	marketplaceRepo := marketplace.NewPostgresRepository(db)
	marketplaceService := marketplace.NewService(marketplaceRepo, promotionService, engagementService, trendingCache)
	marketplace.NewHandler(marketplaceService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Soko API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
