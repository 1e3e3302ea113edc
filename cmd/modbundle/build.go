package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"modbundle/internal/bundle"
	"modbundle/internal/lexer"
	"modbundle/internal/observ"
	"modbundle/internal/trace"
)

var buildCmd = &cobra.Command{
	Use:   "build [entry | target | file]",
	Short: "Bundle an entry module and everything it declares into one file",
	Long: `Bundle an entry module and everything it declares into one file.

Without arguments every [[bundle]] target of the nearest bundle.toml is built.
Output files are only replaced after the whole bundle was produced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	addSourceFlags(buildCmd)
	buildCmd.Flags().StringP("output", "o", "", "write the bundle to this file (single target only)")
	buildCmd.Flags().Bool("stdout", false, "write every bundle to stdout, ignoring configured outputs")
	buildCmd.Flags().Int("jobs", 0, "max targets built in parallel (0=auto)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if output != "" && toStdout {
		return errors.New("--output and --stdout are mutually exclusive")
	}

	targets, err := resolveTargets(cmd, args)
	if err != nil {
		return err
	}
	if output != "" {
		if len(targets) != 1 {
			return fmt.Errorf("--output needs a single target, got %d", len(targets))
		}
		targets[0].Output = output
		if output == "-" {
			targets[0].Output = ""
		}
	}
	if toStdout {
		for i := range targets {
			targets[i].Output = ""
		}
	}

	timer, err := timerFor(cmd)
	if err != nil {
		return err
	}
	logger := loggerFrom(cmd)

	results, err := buildAll(cmd.Context(), targets, jobs, logger, timer)
	if err != nil {
		return err
	}

	// stdout-бандлы печатаем в порядке целей, а не завершения
	for i, t := range targets {
		if t.Output != "" {
			continue
		}
		if _, err := cmd.OutOrStdout().Write(results[i]); err != nil {
			return fmt.Errorf("write bundle %q: %w", t.Name, err)
		}
	}

	printTimings(cmd, timer)
	return nil
}

// buildAll builds targets concurrently. results[i] holds the bundle of
// targets[i] when it goes to stdout; file targets are written as they finish.
func buildAll(ctx context.Context, targets []buildTarget, jobs int, logger *log.Logger, timer *observ.Timer) ([][]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([][]byte, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(targets))))
	for i, t := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := buildTargetBytes(gctx, t, logger, timer)
			if err != nil {
				return fmt.Errorf("bundle %q: %w", t.Name, err)
			}
			if t.Output == "" {
				results[i] = data
				return nil
			}
			if err := writeFileAtomic(t.Output, data); err != nil {
				return fmt.Errorf("bundle %q: %w", t.Name, err)
			}
			logger.Info("bundled", "target", t.Name, "output", t.Output, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildTargetBytes loads t and renders it into memory.
func buildTargetBytes(ctx context.Context, t buildTarget, logger *log.Logger, timer *observ.Timer) ([]byte, error) {
	ctx, span := trace.Start(ctx, trace.ScopeCommand, "target "+t.Name)
	defer span.End("")

	b, err := loadTarget(ctx, t, logger, timer)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = timer.Measure("write "+t.Name, func() error {
		_, wspan := trace.Start(ctx, trace.ScopePass, "write "+t.Name)
		defer wspan.End("")
		return b.Write(&buf)
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// loadTarget creates and loads the Bundle for t.
func loadTarget(ctx context.Context, t buildTarget, logger *log.Logger, timer *observ.Timer) (*bundle.Bundle, error) {
	cls, err := lexer.NewClassifier(t.Syntax)
	if err != nil {
		return nil, err
	}
	t.Resolver.Logger = logger
	b := bundle.New(t.Entry, t.Resolver, bundle.Options{
		Classifier:         cls,
		PreserveVisibility: t.PreserveVisibility,
		Logger:             logger,
	})
	err = timer.Measure("load "+t.Name, func() error {
		return b.Load(ctx)
	})
	if err != nil {
		return nil, err
	}
	st := b.Stats()
	logger.Debug("loaded", "target", t.Name, "modules", st.Blocks+1, "lines", st.Lines, "depth", st.Depth)
	return b, nil
}

// writeFileAtomic replaces path with data via a temporary file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".modbundle-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck

	if _, err := f.Write(data); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	// CreateTemp создаёт 0600; результат должен читаться как обычный исходник
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

// writeOutput sends data to path, or to w when path is "" or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return writeFileAtomic(path, data)
}
