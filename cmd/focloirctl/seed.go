package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres"
	"github.com/heartmarshall/focloireacht-backend/internal/adapter/postgres/seed"
	"github.com/heartmarshall/focloireacht-backend/internal/app/seeder"
)

func seedCommand(e *env) *cobra.Command {
	var (
		seederConfig string
		dataset    string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the reference regions, sources and entries",
		Long: "Load the reference dataset. Without --file the embedded dataset is used.\n" +
			"Existing regions, sources and entries are kept; only missing rows are added.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := seeder.LoadConfig(seederConfig)
			if err != nil {
				return err
			}
			if dataset != "" {
				cfg.DatasetPath = dataset
			}
			if dryRun {
				cfg.DryRun = true
			}

			ds, err := seeder.LoadDataset(cfg.DatasetPath)
			if err != nil {
				return err
			}

			pool, err := e.pool(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			p := seeder.NewPipeline(e.logger, seed.New(pool), postgres.NewTxManager(pool), *cfg)
			if err := p.Run(cmd.Context(), ds); err != nil {
				return err
			}

			results := p.Results()
			for _, name := range p.Phases() {
				r := results[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %3d rows, %3d written\n", name, r.Rows, r.Inserted)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&seederConfig, "seeder-config", "", "seeder config YAML (default: environment)")
	cmd.Flags().StringVar(&dataset, "file", "", "dataset YAML to load instead of the embedded one")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the dataset without writing")
	return cmd
}
