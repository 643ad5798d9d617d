package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/masonium/fadedspade-hand-history-reader/internal/config"
	"github.com/masonium/fadedspade-hand-history-reader/internal/fileutil"
	"github.com/masonium/fadedspade-hand-history-reader/internal/handhistory"
	"github.com/masonium/fadedspade-hand-history-reader/internal/stats"
)

// CLI reads one hand-history log and prints a statistics block per player.
type CLI struct {
	Version       kong.VersionFlag `short:"v" help:"Show version"`
	File          string           `arg:"" name:"file" help:"Path to the hand-history log"`
	Config        string           `short:"c" default:"handstats.hcl" help:"Path to HCL configuration file"`
	LogLevel      string           `short:"l" help:"Log level (overrides config)"`
	Workers       int              `short:"w" help:"Players computed concurrently (overrides config)"`
	Players       []string         `short:"p" name:"player" help:"Only report these players (overrides config)"`
	ShowAdditions bool             `help:"Append a summary of out-of-pot chip additions"`
	Output        string           `short:"o" help:"Write the report to this file instead of stdout"`
}

// runEnv carries the process resources bound into Run.
type runEnv struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
	clock  quartz.Clock
}

func (c *CLI) Run(env *runEnv) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(env.stderr, cfg.Level())
	start := env.clock.Now()

	history, err := parseFile(c.File, logger)
	if err != nil {
		return err
	}

	players := stats.Players(history, cfg.Players)
	logger.Info("Parsed hand history",
		"file", c.File,
		"hands", len(history.Hands),
		"players", len(players),
		"additions", len(history.Additions),
		"elapsed", env.clock.Since(start))

	write := func(w io.Writer) error {
		if err := stats.Report(env.ctx, w, history.Hands, players, cfg.Workers); err != nil {
			return err
		}
		if cfg.ShowAdditions {
			return stats.RenderAdditions(w, stats.SummarizeAdditions(history.Additions))
		}
		return nil
	}

	if c.Output != "" {
		err = fileutil.WriteAtomic(c.Output, 0o644, write)
	} else {
		err = write(env.stdout)
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	logger.Debug("Report complete", "output", c.outputName(), "elapsed", env.clock.Since(start))
	return nil
}

func (c *CLI) applyOverrides(cfg *config.Config) {
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	if len(c.Players) > 0 {
		cfg.Players = c.Players
	}
	if c.ShowAdditions {
		cfg.ShowAdditions = true
	}
}

func (c *CLI) outputName() string {
	if c.Output == "" {
		return "stdout"
	}
	return c.Output
}

// parseFile opens and parses a hand-history log.
func parseFile(path string, logger *log.Logger) (*handhistory.HandHistory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening hand history: %w", err)
	}
	defer f.Close()

	history, err := handhistory.Parse(f, handhistory.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return history, nil
}
