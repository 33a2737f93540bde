package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/app"
	"github.com/heartmarshall/focloireacht-backend/internal/config"
)

// env is the state shared by subcommands, built in PersistentPreRunE.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func rootCommand() *cobra.Command {
	e := &env{}
	var configPath string

	root := &cobra.Command{
		Use:           "focloirctl",
		Short:         "Focloireacht operator CLI",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			load := config.Load
			if configPath != "" {
				load = func() (*config.Config, error) { return config.LoadFile(configPath) }
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = app.NewLogger(cfg.Log)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config YAML (default $"+config.PathEnv+" or "+config.DefaultPath+")")

	root.AddCommand(
		migrateCommand(e),
		seedCommand(e),
		userCommand(e),
	)
	return root
}

func (e *env) pool(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, e.cfg.Database)
}
