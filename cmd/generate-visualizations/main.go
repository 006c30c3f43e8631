// Command generate-visualizations trains a logistic regression on the churn
// dataset and writes ROC, correlation, feature importance and confusion
// matrix plots to visualizations/.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/logiop/customer-churn-analysis/pkg/config"
	"github.com/logiop/customer-churn-analysis/pkg/data"
	"github.com/logiop/customer-churn-analysis/pkg/pipeline"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	var configPath string
	root := &cobra.Command{
		Use:           "generate-visualizations",
		Short:         "Train the churn model and render diagnostic plots",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			slog.Info("Generating visualizations", "output", cfg.OutputDir)
			if _, err := pipeline.Run(cfg); err != nil {
				return err
			}
			slog.Info("All visualizations generated successfully")
			return nil
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "optional config file (default ./churn.yaml)")

	if err := root.Execute(); err != nil {
		if errors.Is(err, data.ErrDatasetMissing) {
			slog.Error("Dataset missing", "error", err)
		} else {
			slog.Error("Analysis failed", "error", err)
		}
		os.Exit(1)
	}
}
