package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"travel-facilities-api/internal/adapters/cache"
	"travel-facilities-api/internal/adapters/mapir"
	"travel-facilities-api/internal/adapters/repositories"
	"travel-facilities-api/internal/api"
	"travel-facilities-api/internal/platform/db"
	"travel-facilities-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Map.ir) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	port := getEnv("PORT", "8080")

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and optionally seed demo data on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}
	if seedPath := os.Getenv("SEED_PATH"); seedPath != "" {
		if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
			log.Fatal(err)
		}
	}

	// The external routing credential is optional: without it the service
	// serves locally estimated ETAs only.
	mapirKey := strings.TrimSpace(os.Getenv("MAPIR_API_KEY"))
	if mapirKey == "" {
		log.Println("MAPIR_API_KEY not set, external routing and places disabled")
	}

	var routeCache *cache.RedisRouteCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		routeCache = cache.NewRedisRouteCache(rdb, 0)
		log.Printf("Route cache enabled addr=%s", addr)
	}

	client := mapir.NewClient(mapirKey, routeCache)

	placeRepo := repositories.NewPostgresPlaceRepository(conn)
	eventRepo := repositories.NewPostgresEventRepository(conn)
	commentRepo := repositories.NewPostgresCommentRepository(conn)
	contribRepo := repositories.NewPostgresContributionRepository(conn)
	routeLogRepo := repositories.NewPostgresRouteLogRepository(conn)

	router := api.NewRouter(api.Deps{
		Places:        placeRepo,
		Events:        eventRepo,
		Comments:      commentRepo,
		Images:        commentRepo,
		Contributions: contribRepo,
		RouteLog:      routeLogRepo,
		Estimator:     services.NewRouteEstimator(client),
		Emergency:     services.NewEmergencyLocator(placeRepo, client),
	})

	// Timeouts are tuned for cold-cache route lookups (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
