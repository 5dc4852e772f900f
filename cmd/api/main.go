package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Maheenrz/smart-khata-ai/internal/config"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/advisor"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/auth"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/community"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/customer"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/user"
	"github.com/Maheenrz/smart-khata-ai/internal/middleware"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/database"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/groq"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/jwt"
	pkgresponse "github.com/Maheenrz/smart-khata-ai/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Smart Khata API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	groqClient := groq.NewClient(groq.Config{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
		Timeout: time.Duration(cfg.GroqTimeoutSeconds) * time.Second,
	})

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	transactionRepo := transaction.NewRepository(db)
	communityRepo := community.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService)
	customerService := customer.NewService(customerRepo)
	transactionService := transaction.NewService(transactionRepo, customerRepo)
	communityService := community.NewService(communityRepo)
	advisorService := advisor.NewService(customerRepo, groqClient, redis)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	customerHandler := customer.NewHandler(customerService)
	transactionHandler := transaction.NewHandler(transactionService)
	communityHandler := community.NewHandler(communityService)
	advisorHandler := advisor.NewHandler(advisorService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/customers", customerHandler.Routes(authMiddleware))
		r.Mount("/transactions", transactionHandler.Routes(authMiddleware))
		r.Mount("/community", communityHandler.Routes(authMiddleware))
		r.Mount("/advisor", advisorHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
