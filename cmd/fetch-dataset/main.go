// Command fetch-dataset downloads the Telco Customer Churn dataset from
// Kaggle into data/.
//
// Requires the kaggle CLI (pip install kaggle) and a configured API key,
// either in ~/.kaggle/kaggle.json, in KAGGLE_USERNAME/KAGGLE_KEY, or in a
// .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/logiop/customer-churn-analysis/pkg/config"
	"github.com/logiop/customer-churn-analysis/pkg/fetch"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	var configPath string
	root := &cobra.Command{
		Use:           "fetch-dataset",
		Short:         "Download and unpack the Telco Customer Churn dataset",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := fetch.LoadCredentials(".env"); err != nil {
				return err
			}

			res, err := fetch.New(cfg).Fetch(cmd.Context())
			if err != nil {
				return err
			}
			slog.Info("Dataset downloaded successfully", "location", res.Dir)
			fmt.Println("\nCSV files in data/:")
			for _, name := range res.CSVFiles {
				fmt.Printf("   - %s\n", name)
			}
			return nil
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "optional config file (default ./churn.yaml)")

	if err := root.Execute(); err != nil {
		switch {
		case errors.Is(err, fetch.ErrToolMissing):
			slog.Error("Kaggle CLI not found",
				"install", "pip install kaggle",
				"configure", "kaggle config set -n api_key -v YOUR_API_KEY")
		case errors.Is(err, fetch.ErrDownloadFailed):
			slog.Error("Error downloading dataset", "error", err)
		default:
			slog.Error("Fetch failed", "error", err)
		}
		os.Exit(1)
	}
}
