package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"clientsim/internal/catalog"
	"clientsim/internal/config"
	"clientsim/internal/domain/repositories"
	"clientsim/internal/gateway"
	"clientsim/internal/handler"
	"clientsim/internal/middleware"
	"clientsim/internal/prompt"
	"clientsim/internal/repository/bolt"
	"clientsim/internal/repository/postgres"
	chatService "clientsim/internal/service/chat"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"storage", cfg.ChatsBackend,
	)

	// Chat repository: bbolt file by default, postgres when configured
	var chatRepo repositories.ChatRepository
	switch cfg.ChatsBackend {
	case config.StoragePostgres:
		ctx := context.Background()
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		repo := postgres.NewChatRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		})
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure chats schema: %v", err)
		}
		chatRepo = repo

		logger.Info("database connected", "table_prefix", cfg.TablePrefix)
	case config.StorageBolt:
		chatRepo = bolt.NewChatRepository(cfg.ChatsDBPath, logger)
		logger.Info("chat store opened", "path", cfg.ChatsDBPath)
	default:
		log.Fatalf("Unknown STORAGE_BACKEND %q", cfg.ChatsBackend)
	}

	// Client catalog and system-prompt renderer
	clientCatalog := catalog.New(cfg.ClientsFile)
	renderer, err := prompt.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to load system prompt template: %v", err)
	}

	// Completion gateway
	completionGateway := gateway.NewOpenAIGateway(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, logger)
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("no OAI_API_KEY configured; chat updates will fail until one is set")
	}

	// Services and handlers
	svc := chatService.NewService(chatRepo, clientCatalog, completionGateway, renderer, cfg.DefaultModel, logger)
	chatHandler := handler.NewChatHandler(svc, logger)
	homeHandler := handler.NewHomeHandler(cfg.AssetsDir)

	logger.Info("services initialized", "default_model", cfg.DefaultModel)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", homeHandler.Home)
	mux.HandleFunc("GET /health", homeHandler.HealthCheck)
	mux.HandleFunc("GET /assets/{path...}", homeHandler.Assets)

	// Chat routes
	mux.HandleFunc("POST /api/chats", chatHandler.CreateChat)
	mux.HandleFunc("GET /api/chats/{id}", chatHandler.GetChat)
	mux.HandleFunc("POST /api/chats/{id}/messages", chatHandler.AppendMessage)
	mux.HandleFunc("DELETE /api/chats/{id}", chatHandler.DeleteChat)

	// Client catalog routes
	mux.HandleFunc("GET /api/clients", chatHandler.ListClients)

	// Build middleware chain
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)

	// CORS - must wrap everything to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. WriteTimeout stays disabled: message appends block
	// on the completion round trip, which has no enforced deadline here;
	// bounded waits belong to the caller.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
