package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/schemagen/internal/alerr"
	"github.com/hlop3z/schemagen/internal/cli"
	"github.com/hlop3z/schemagen/pkg/schemagen"
)

// watchCmd regenerates whenever an input changes.
func watchCmd() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate outputs whenever an input file changes",
		Long: `Runs generate once, then watches the directories of every input and runs it
again after a short quiet period following each write, create, or rename.
A failed run is reported and the watch continues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, cfg, err := newGenerator(cmd.Flags(), &flags)
			if err != nil {
				return err
			}
			defer gen.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runWatch(ctx, gen, cfg, cmd.ErrOrStderr())
		},
	}

	flags.bind(cmd.Flags())
	return cmd
}

// inputSet matches watcher events against the configured inputs.
type inputSet map[string]bool

func newInputSet(inputs []string) inputSet {
	set := make(inputSet, len(inputs))
	for _, in := range inputs {
		set[absClean(in)] = true
	}
	return set
}

// relevant reports whether ev should trigger a regeneration.
func (s inputSet) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return s[absClean(ev.Name)]
}

// inputDirs returns the distinct directories holding inputs, sorted.
func inputDirs(inputs []string) []string {
	var dirs []string
	for _, in := range inputs {
		dirs = append(dirs, filepath.Dir(absClean(in)))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

func absClean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// runWatch generates once and then on every relevant change until ctx ends.
// Directories are watched rather than files so editors that save by rename
// keep being observed.
func runWatch(ctx context.Context, gen *schemagen.Generator, cfg *Config, out io.Writer) error {
	logger := slog.New(slog.NewTextHandler(out, nil))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return alerr.Wrap(alerr.ErrReadInput, err, "failed to start file watcher")
	}
	defer watcher.Close()

	for _, dir := range inputDirs(cfg.Inputs) {
		if err := watcher.Add(dir); err != nil {
			return alerr.Wrap(alerr.ErrReadInput, err, "failed to watch directory").
				WithFile(dir, 0)
		}
	}

	inputs := newInputSet(cfg.Inputs)
	regenerate(ctx, gen, cfg, logger, out)
	logger.Info(msgWatching, "inputs", len(cfg.Inputs), "outdir", cfg.OutDir)

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if inputs.relevant(ev) {
				logger.Debug("input changed", "file", ev.Name, "op", ev.Op.String())
				debounce.Reset(watchDebounce)
			}
		case <-debounce.C:
			regenerate(ctx, gen, cfg, logger, out)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}

// regenerate runs one generate cycle. Failures are reported, not returned.
func regenerate(ctx context.Context, gen *schemagen.Generator, cfg *Config, logger *slog.Logger, out io.Writer) {
	res, err := gen.Generate(ctx, cfg.Inputs)
	if err == nil && !res.Empty() {
		err = gen.Write(res)
	}
	if err != nil {
		fmt.Fprint(out, cli.FormatError(err))
		if alerr.HasCode(err) {
			logger.Error("generation failed", "code", string(alerr.GetErrorCode(err)))
		} else {
			logger.Error("generation failed", "error", err)
		}
		return
	}
	printWarnings(out, res.Warnings)
	if res.Empty() {
		logger.Info(msgNoStructs)
		return
	}
	logger.Info(msgRegenerate, "structs", len(res.Structs), "outdir", cfg.OutDir)
}
