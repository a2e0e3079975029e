package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"news-portal/internal/config"
	"news-portal/internal/infra/adapter/persistence/memory"
	pgRepo "news-portal/internal/infra/adapter/persistence/postgres"
	"news-portal/internal/infra/db"
	"news-portal/internal/observability/logging"
	"news-portal/internal/repository"
)

const minSecretLength = 32

func main() {
	logger := initLogger()

	newsCfg, err := config.LoadNewsConfig()
	if err != nil {
		logger.Error("failed to load news configuration", slog.Any("error", err))
		os.Exit(1)
	}
	secCfg := loadSecurityConfig(logger)

	secret, err := authSecret(logger, os.Getenv)
	if err != nil {
		logger.Error("invalid AUTH_SECRET", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	database, users := initUserStore(ctx, logger)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	version := getVersion()
	components := setupServer(logger, serverDeps{
		News:     newsCfg,
		Security: secCfg,
		Secret:   secret,
		DB:       database,
		Users:    users,
		Version:  version,
	})

	runServer(logger, components, version)
}

// initLogger builds the JSON logger and installs it as the slog default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadSecurityConfig reads SECURITY_CONFIG_PATH when set, defaults otherwise.
func loadSecurityConfig(logger *slog.Logger) *config.SecurityConfig {
	path := os.Getenv("SECURITY_CONFIG_PATH")
	if path == "" {
		return config.DefaultSecurityConfig()
	}
	cfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("security configuration loaded", slog.String("path", path))
	return cfg
}

var weakSecrets = []string{"secret", "password", "changeme", "default", "news-portal"}

// authSecret returns the token signing key. Without AUTH_SECRET a random
// key is generated, so sessions do not survive a restart.
func authSecret(logger *slog.Logger, getenv func(string) string) ([]byte, error) {
	secret := getenv("AUTH_SECRET")
	if secret == "" {
		logger.Warn("AUTH_SECRET not set, using an ephemeral development key")
		buf := make([]byte, minSecretLength)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		return []byte(hex.EncodeToString(buf)), nil
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("must be at least %d characters", minSecretLength)
	}
	lower := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if strings.HasPrefix(lower, weak) && strings.Trim(lower[len(weak):], "0123456789!") == "" {
			return nil, errors.New("must not be a common weak value")
		}
	}
	return []byte(secret), nil
}

// initUserStore opens Postgres when DATABASE_URL is set and falls back to
// the seeded in-memory store otherwise. The returned *sql.DB is nil in the
// latter case.
func initUserStore(ctx context.Context, logger *slog.Logger) (*sql.DB, repository.UserRepository) {
	database, err := db.Open(ctx, os.Getenv("DATABASE_URL"))
	switch {
	case errors.Is(err, db.ErrNoDSN):
		users, err := memory.NewUserRepo()
		if err != nil {
			logger.Error("failed to seed user store", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("DATABASE_URL not set, using in-memory user store",
			slog.String("demo_email", memory.DemoEmail))
		return nil, users
	case err != nil:
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		_ = database.Close()
		os.Exit(1)
	}
	return database, pgRepo.NewUserRepo(database)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}
