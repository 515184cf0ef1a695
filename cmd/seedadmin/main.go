// Command seedadmin creates or promotes the bootstrap admin account from
// GRACEHUB_ADMIN_* environment variables. Running it again is a no-op.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sqliteadapter "github.com/ericfisherdev/gracehub/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/gracehub/internal/application"
	"github.com/ericfisherdev/gracehub/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("seed admin failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	seed, err := config.LoadAdminSeed()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if _, err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}

	accounts := application.NewAccountService(
		sqliteadapter.NewAccountRepo(db),
		application.NewAuthority(cfg.SecretKey, cfg.TokenTTL),
		application.NewPasswordHasher(cfg.BcryptCost),
	)

	admin, created, err := accounts.EnsureAdmin(ctx, application.RegisterInput{
		Username: seed.Username,
		Email:    seed.Email,
		Password: seed.Password,
	})
	if err != nil {
		return err
	}

	if created {
		slog.Info("admin account created", "account_id", admin.ID, "username", admin.Username)
	} else {
		slog.Info("admin account already present", "account_id", admin.ID, "username", admin.Username)
	}
	return nil
}
