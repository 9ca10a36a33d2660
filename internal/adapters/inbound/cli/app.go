package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/inventario/internal/adapters/outbound/config"
	"github.com/abdidvp/inventario/internal/adapters/outbound/device"
	"github.com/abdidvp/inventario/internal/adapters/outbound/logging"
	"github.com/abdidvp/inventario/internal/adapters/outbound/sqlstore"
	"github.com/abdidvp/inventario/internal/application"
	"github.com/abdidvp/inventario/internal/domain"
)

// app holds the adapters opened for one command invocation. It implements
// domain.Session so the menu can close the store and flush logs on exit.
type app struct {
	logger    *zap.Logger
	store     *sqlstore.Store
	inventory *application.InventoryService
}

// openApp loads config, opens the store and wires the inventory service.
// autoCommit forces a commit after every batch for non-interactive callers.
func openApp(cmd *cobra.Command, opts *rootOptions, autoCommit bool) (*app, error) {
	cfg, err := config.New().Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.dsn != "" {
		cfg.Store.DSN = opts.dsn
	}
	if autoCommit {
		cfg.Store.AutoCommit = true
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	store, err := sqlstore.Open(cmd.Context(), cfg.Store, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("opening inventory: %w", err)
	}

	var source domain.CodeSource
	switch {
	case len(cfg.Device.Command) > 0:
		source = device.New(cfg.Device)
	case len(cfg.Device.Codes) > 0:
		source = device.NewStatic(cfg.Device.Codes...)
	}

	logger.Debug("inventory opened",
		zap.String("driver", string(cfg.Store.Driver)),
		zap.String("dsn", cfg.Store.DSN),
		zap.Bool("device", cfg.HasDevice()),
	)

	return &app{
		logger:    logger,
		store:     store,
		inventory: application.NewInventoryService(store, source, logger),
	}, nil
}

// Close commits or discards the session, closes the store and flushes logs.
func (a *app) Close(commit bool) error {
	err := a.store.Close(commit)
	_ = a.logger.Sync()
	return err
}
