// Periferia is a minimal social-posting API: users authenticate, create
// short text posts, like other users' posts, and read their own profile.
// This file wires configuration, the database pool, services, handlers, the
// HTTP router and middleware, and handles graceful shutdown.
//
// @title Periferia Social API
// @version 1.0
// @description REST API for the Periferia social-posting application.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/periferia-go/apperror"
	"github.com/user/periferia-go/auth"
	"github.com/user/periferia-go/config"
	"github.com/user/periferia-go/db"
	_ "github.com/user/periferia-go/docs" // generated swagger docs
	"github.com/user/periferia-go/posts"
	"github.com/user/periferia-go/seed"
	"github.com/user/periferia-go/users"
)

func main() {
	runSeed := flag.Bool("seed", false, "wipe and seed the database, then exit")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Debug(".env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Auth.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET is not set; using the development default, do not run this in production")
	}

	pool, err := db.NewPool(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database, "./migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	if *runSeed {
		if err := seed.Run(context.Background(), pool, logger); err != nil {
			logger.Fatalf("Failed to seed database: %v", err)
		}
		return
	}

	tokenService := auth.NewTokenService(*cfg.Auth)
	authService := auth.NewAuthService(pool, tokenService, logger)
	authHandlers := auth.NewHandlers(authService)

	userService := users.NewUserService(pool)
	userHandlers := users.NewUserHandlers(userService)

	postService := posts.NewPostService(pool, logger)
	postHandler := posts.NewPostHandler(postService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that answers with the uniform error envelope.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Errorf("panic: %+v", rvr)
					auth.WriteError(ww, r, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokenService))
			r.Post("/change-password", authHandlers.HandleChangePassword())
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.Middleware(tokenService))
		r.Get("/me", userHandlers.HandleGetProfile())
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Use(auth.Middleware(tokenService))
		postHandler.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped gracefully")
}
