package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/events"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/handlers"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/middleware"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/seed"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/server"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/service"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/sessions"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/pkg/tokens"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	repo, err := buildRepository(ctx)
	if err != nil {
		return err
	}
	defer repo.Close()

	// The in-memory backend starts empty on every boot; install the firm
	// templates so the portal is usable out of the box.
	if cfg.Database.Type == "memory" {
		if err := seed.Templates(ctx, repo); err != nil {
			return err
		}
	}

	store, err := buildSessionStore()
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, err := buildPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		secret = base64.StdEncoding.EncodeToString(buf)
		slog.Warn("auth.jwt_secret not set, generated an ephemeral secret; tokens will not survive restarts")
	}
	tokenGen := tokens.NewTokenGenerator(secret)

	authSvc := service.NewAuthService(repo, tokenGen, store)
	templateSvc := service.NewTemplateService(repo)
	caseSvc := service.NewCaseService(repo, publisher)
	documentSvc := service.NewDocumentService(repo, publisher)

	router := server.NewRouter(server.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc),
		Users:     handlers.NewUserHandler(authSvc),
		Templates: handlers.NewTemplateHandler(templateSvc),
		Cases:     handlers.NewCaseHandler(caseSvc),
		Documents: handlers.NewDocumentHandler(documentSvc),
	}, middleware.NewAuthMiddleware(tokenGen), middleware.CORSConfig{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	})

	slog.Info("starting portal", "backend", cfg.Database.Type, "port", cfg.Server.Port)
	return server.New(cfg.Server, router).Run()
}

func buildRepository(ctx context.Context) (repository.Repository, error) {
	switch cfg.Database.Type {
	case "postgres":
		repo, err := repository.NewPostgresRepository(ctx, cfg.Database.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return repo, nil
	default:
		return repository.NewInMemoryRepository(), nil
	}
}

func buildSessionStore() (sessions.Store, error) {
	if !cfg.Redis.Enabled {
		return sessions.NewMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return sessions.NewRedisStore(client), nil
}

func buildPublisher() (events.Publisher, error) {
	if !cfg.NATS.Enabled {
		return events.NopPublisher{}, nil
	}
	pub, err := events.Connect(cfg.NATS.URL, "fc-portal")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return pub, nil
}
