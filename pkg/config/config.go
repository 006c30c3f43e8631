package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every path and constant the fetch and analyze commands use.
// Defaults reproduce the fixed layout: data/ for the dataset, visualizations/
// for the rendered plots.
type Config struct {
	DataDir   string `mapstructure:"data_dir"`
	OutputDir string `mapstructure:"output_dir"`

	KaggleBin string `mapstructure:"kaggle_bin"`
	Dataset   string `mapstructure:"dataset"`
	Archive   string `mapstructure:"archive"`
	CSVName   string `mapstructure:"csv_name"`

	LabelColumn   string  `mapstructure:"label_column"`
	PositiveLabel string  `mapstructure:"positive_label"`
	IDColumn      string  `mapstructure:"id_column"`
	CoerceColumn  string  `mapstructure:"coerce_column"`
	TestRatio     float64 `mapstructure:"test_ratio"`
	Seed          int64   `mapstructure:"seed"`

	Solver       string  `mapstructure:"solver"`
	MaxIter      int     `mapstructure:"max_iter"`
	C            float64 `mapstructure:"c"`
	LearningRate float64 `mapstructure:"learning_rate"`
	BatchSize    int     `mapstructure:"batch_size"`

	TopFeatures  int `mapstructure:"top_features"`
	CorrFeatures int `mapstructure:"corr_features"`
	DPI          int `mapstructure:"dpi"`
}

var defaults = map[string]any{
	"data_dir":       "data",
	"output_dir":     "visualizations",
	"kaggle_bin":     "kaggle",
	"dataset":        "blastchar/telco-customer-churn",
	"archive":        "telco-customer-churn.zip",
	"csv_name":       "WA_Fn-UseC_-Telco_Customer_Churn.csv",
	"label_column":   "Churn",
	"positive_label": "Yes",
	"id_column":      "customerID",
	"coerce_column":  "TotalCharges",
	"test_ratio":     0.2,
	"seed":           42,
	"solver":         "lbfgs",
	"max_iter":       1000,
	"c":              1.0,
	"learning_rate":  0.05,
	"batch_size":     64,
	"top_features":   12,
	"corr_features":  7,
	"dpi":            300,
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads churn.yaml from the working directory (or the explicit path) and
// CHURN_* environment variables on top of the defaults. A missing churn.yaml
// is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetEnvPrefix("CHURN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("churn")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TestRatio <= 0 || c.TestRatio >= 1:
		return fmt.Errorf("test_ratio must be in (0, 1), got %v", c.TestRatio)
	case c.MaxIter <= 0:
		return fmt.Errorf("max_iter must be positive, got %d", c.MaxIter)
	case c.C <= 0:
		return fmt.Errorf("c must be positive, got %v", c.C)
	case c.Solver != "lbfgs" && c.Solver != "sgd":
		return fmt.Errorf("solver must be lbfgs or sgd, got %q", c.Solver)
	case c.Solver == "sgd" && (c.LearningRate <= 0 || c.BatchSize <= 0):
		return errors.New("sgd solver needs positive learning_rate and batch_size")
	case c.TopFeatures <= 0 || c.CorrFeatures <= 0:
		return errors.New("top_features and corr_features must be positive")
	case c.DPI <= 0:
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	case c.LabelColumn == "":
		return errors.New("label_column is required")
	}
	return nil
}

// DatasetPath is the extracted CSV the analyzer reads.
func (c Config) DatasetPath() string { return filepath.Join(c.DataDir, c.CSVName) }

// ArchivePath is where the kaggle CLI leaves the downloaded zip.
func (c Config) ArchivePath() string { return filepath.Join(c.DataDir, c.Archive) }
