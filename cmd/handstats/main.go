package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
)

// version is set by ldflags during build
var version = "dev"

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handstats"),
		kong.Description("Per-player statistics from a poker hand-history log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := ctx.Run(&runEnv{
		ctx:    sigCtx,
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  quartz.NewReal(),
	})
	stop()
	ctx.FatalIfErrorf(err)
}
