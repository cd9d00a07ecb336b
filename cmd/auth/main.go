package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/accountshq/accounts-service/internal/auth/http"
	authrepo "github.com/accountshq/accounts-service/internal/auth/repository"
	"github.com/accountshq/accounts-service/internal/auth/service"
	"github.com/accountshq/accounts-service/internal/common/clock"
	"github.com/accountshq/accounts-service/internal/common/config"
	commoncrypto "github.com/accountshq/accounts-service/internal/common/crypto"
	"github.com/accountshq/accounts-service/internal/common/db"
	commonhttp "github.com/accountshq/accounts-service/internal/common/http"
	"github.com/accountshq/accounts-service/internal/common/logger"
	srv "github.com/accountshq/accounts-service/internal/common/server"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "auth", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	userRepo := authrepo.NewPgRepository(pool)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, clk)

	authService := service.NewAuthService(service.AuthServiceDeps{
		Repo:        userRepo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Tokens:      tokens,
		Clock:       clk,
		Log:         log,
	})

	handler := authhttp.NewHandler(authService, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "auth")
}
