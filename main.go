// Package main is the entry point, a dependency-injection wire-up:
// config → database → repositories → services → handlers → middleware →
// router → CORS → HTTP server → graceful shutdown.
//
// No globals; everything is constructed here and passed down.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akinalp/blogapi/config"
	"github.com/akinalp/blogapi/database"
	"github.com/akinalp/blogapi/handlers"
	"github.com/akinalp/blogapi/middleware"
	"github.com/akinalp/blogapi/pkg/ratelimit"
	"github.com/akinalp/blogapi/repository"
	"github.com/akinalp/blogapi/services"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] blogapi server starting...")

	// Configuration errors are fatal: better to die at startup than to
	// fail on the first request.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	ctx := context.Background()
	db, err := database.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Upload.Dir, 0755); err != nil {
		log.Fatalf("[main] failed to create upload directory: %v", err)
	}

	// Repositories
	postRepo := repository.NewSQLPostRepo(db.Conn)
	userRepo := repository.NewSQLUserRepo(db.Conn)

	// Services
	postService := services.NewPostService(db, postRepo)
	authService := services.NewAuthService(db, userRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiryMinute)
	uploadService := services.NewUploadService(db, cfg.Upload.Dir, cfg.Upload.MaxSize)

	// Handlers
	loginLimiter := ratelimit.NewLoginRateLimiter(5, 2*time.Minute)
	defer loginLimiter.Stop()

	postHandler := handlers.NewPostHandler(postService)
	searchHandler := handlers.NewSearchHandler(postService)
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.Upload.MaxSize)
	authHandler := handlers.NewAuthHandler(authService, loginLimiter)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)

	// Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Posts
	mux.HandleFunc("POST /posts/", postHandler.Create)
	mux.HandleFunc("GET /posts/", postHandler.List)
	mux.HandleFunc("GET /posts/{id}", postHandler.Get)
	mux.HandleFunc("PUT /posts/{id}", postHandler.Update)
	mux.HandleFunc("DELETE /posts/{id}", postHandler.Delete)

	// Reactions
	mux.HandleFunc("POST /posts/{id}/react", postHandler.React)
	mux.HandleFunc("DELETE /posts/{id}/react", postHandler.Unreact)

	// Upload + search
	mux.HandleFunc("POST /upload/", uploadHandler.Upload)
	mux.HandleFunc("GET /search/", searchHandler.Search)

	// Auth
	mux.HandleFunc("POST /register/", authHandler.Register)
	mux.HandleFunc("POST /login/", authHandler.Login)
	mux.Handle("GET /protected/", authMiddleware.Require(http.HandlerFunc(authHandler.Protected)))

	// Static serving of uploaded images. http.FileServer already rejects
	// "..", and the flat-filename guard refuses subdirectory paths.
	uploadsFS := http.StripPrefix(services.PublicUploadPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET "+services.PublicUploadPrefix, uploadsFS)

	// CORS allow-list from config.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := middleware.Logger(corsHandler.Handler(mux))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
