// Command schemats generates TypeScript declarations from a MySQL or
// PostgreSQL catalog.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/koustreak/schemats/internal/config"
	"github.com/koustreak/schemats/internal/errs"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Context carries global flags to every command.
type Context struct {
	Config    string
	LogLevel  string
	LogFormat string

	ctx context.Context
}

// CLI represents the command-line interface
var CLI struct {
	Config    string `help:"Configuration file path (default: schemats.yaml when present)" short:"c"`
	LogLevel  string `help:"Log level: debug, info, warn, error, off" name:"log-level"`
	LogFormat string `help:"Log format: console or json" name:"log-format"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate declarations (default command)"`
	Serve    ServeCmd    `cmd:"" help:"Serve declarations over HTTP"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run() error {
	fmt.Println("schemats " + version)
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("schemats"),
		kong.Description("Generate TypeScript declarations from a database schema."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &Context{
		Config:    CLI.Config,
		LogLevel:  CLI.LogLevel,
		LogFormat: CLI.LogFormat,
		ctx:       ctx,
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "schemats: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for usage and configuration mistakes, 1 for everything else.
func exitCode(err error) int {
	switch {
	case errs.IsInvalidInput(err),
		errors.Is(err, ErrMissingConnection),
		errors.Is(err, ErrConflictingDefaults),
		errors.Is(err, ErrPresignNeedsObject),
		errors.Is(err, ErrTableWithAggregate),
		errors.Is(err, ErrNegativeConcurrency),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrInvalidConcurrency),
		errors.Is(err, config.ErrInvalidLogLevel),
		errors.Is(err, config.ErrInvalidLogFormat),
		errors.Is(err, config.ErrStorageNotConfigured),
		errors.Is(err, config.ErrInvalidEnvValue):
		return 2
	}
	return 1
}
