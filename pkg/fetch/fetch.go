// Package fetch downloads the churn dataset through the kaggle CLI and
// unpacks it into the data directory.
package fetch

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/logiop/customer-churn-analysis/pkg/config"
)

var (
	// ErrToolMissing means the kaggle CLI is not on PATH.
	ErrToolMissing = errors.New("kaggle CLI not found")
	// ErrDownloadFailed means the CLI ran but exited non-zero.
	ErrDownloadFailed = errors.New("dataset download failed")
)

// Runner executes an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, streaming their output.
type ExecRunner struct {
	Stdout, Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

// Fetcher downloads one Kaggle dataset archive into Dir. Archive is the
// path the CLI is expected to write.
type Fetcher struct {
	Tool    string
	Dataset string
	Dir     string
	Archive string

	Runner   Runner
	LookPath func(string) (string, error)
}

// Result lists what a fetch left on disk.
type Result struct {
	Dir       string
	Extracted []string
	CSVFiles  []string
}

func New(cfg config.Config) *Fetcher {
	return &Fetcher{
		Tool:     cfg.KaggleBin,
		Dataset:  cfg.Dataset,
		Dir:      cfg.DataDir,
		Archive:  cfg.ArchivePath(),
		Runner:   ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		LookPath: exec.LookPath,
	}
}

// LoadCredentials reads KAGGLE_* variables from a .env file when one exists.
// Variables already set in the environment win.
func LoadCredentials(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Fetch runs one download attempt, extracts the archive, removes it and
// lists the CSV files in the data directory.
func (f *Fetcher) Fetch(ctx context.Context) (*Result, error) {
	tool, err := f.LookPath(f.Tool)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolMissing, f.Tool, err)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	slog.Info("Downloading dataset", "dataset", f.Dataset, "dir", f.Dir)
	if err := f.Runner.Run(ctx, tool, "datasets", "download", "-d", f.Dataset, "-p", f.Dir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	res := &Result{}
	archive := f.Archive
	if _, err := os.Stat(archive); err == nil {
		slog.Info("Extracting files", "archive", archive)
		if res.Extracted, err = Extract(archive, f.Dir); err != nil {
			return nil, err
		}
		if err := os.Remove(archive); err != nil {
			return nil, fmt.Errorf("remove archive: %w", err)
		}
	}

	if res.Dir, err = filepath.Abs(f.Dir); err != nil {
		return nil, err
	}
	if res.CSVFiles, err = ListCSV(f.Dir); err != nil {
		return nil, err
	}
	return res, nil
}

// Extract unpacks every entry of a zip archive under dir and returns the
// written file names. Entries that would land outside dir are rejected.
func Extract(archive, dir string) ([]string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, zf := range zr.File {
		target := filepath.Join(root, zf.Name)
		if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return names, fmt.Errorf("archive entry %q escapes %s", zf.Name, dir)
		}
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return names, err
			}
			continue
		}
		if err := extractFile(zf, target); err != nil {
			return names, fmt.Errorf("extract %s: %w", zf.Name, err)
		}
		names = append(names, zf.Name)
	}
	return names, nil
}

func extractFile(zf *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := zf.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// ListCSV returns the sorted names of *.csv files directly under dir.
func ListCSV(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	sort.Strings(names)
	return names, nil
}
