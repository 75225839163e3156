package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/asset-minter/internal/api"
	"github.com/AlexZinkM/asset-minter/internal/client"
	"github.com/AlexZinkM/asset-minter/internal/config"
	"github.com/AlexZinkM/asset-minter/internal/handler"
	"github.com/AlexZinkM/asset-minter/internal/model"
	"github.com/AlexZinkM/asset-minter/internal/submit"
	"github.com/AlexZinkM/asset-minter/internal/wallet"
	"github.com/AlexZinkM/asset-minter/minter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func serve(ctx context.Context) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var providers []wallet.Provider
	if path := config.GetKeystoreFilePath(); path != "" {
		// Prompt for the keystore password at startup (hidden input); stored in memory only
		if err := config.PromptForPassword(); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		providers = append(providers, wallet.NewKeystoreProvider(path, config.GetKeystorePasswordBytes))
	}
	if cfg.RemoteSignerURL != "" {
		signer := client.NewSignerClient(cfg.RemoteSignerURL)
		providers = append(providers, wallet.NewRemoteProvider(cfg.RemoteSignerName, signer, logger.Named("remote")))
	}

	registry, err := wallet.NewRegistry(providers...)
	if err != nil {
		return err
	}
	wallets, err := wallet.NewManager(registry, config.GetNetwork(), logger.Named("wallet"))
	if err != nil {
		return err
	}

	endpoints := make(map[model.Network]string, len(model.Networks))
	for _, n := range model.Networks {
		url, err := cfg.AlgodURL(n)
		if err != nil {
			return err
		}
		endpoints[n] = url
	}

	submitter := submit.NewSubmitter(
		submit.WithLogger(logger.Named("submit")),
		submit.WithConfirmationRounds(cfg.ConfirmationRounds),
		submit.WithConfirmationTimeout(config.GetConfirmationTimeout()),
		submit.WithMaxFee(config.GetMaxFee()),
	)
	m := minter.New(wallets, submitter, client.NewLedgers(endpoints, cfg.AlgodToken), logger.Named("minter"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := wallets.Run(ctx); err != nil {
			logger.Error("wallet notifications stopped", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:    ":" + config.GetPort(),
		Handler: api.SetupRouter(handler.NewMinterHandler(m, logger.Named("http"))),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("network", wallets.Network().String()),
			zap.Int("wallets", len(providers)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}
