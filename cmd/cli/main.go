package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/log-enricher/pkg/app"
	"github.com/de-tools/log-enricher/pkg/config"
	"github.com/de-tools/log-enricher/pkg/logging"
	"github.com/de-tools/log-enricher/pkg/runtime/terminal"
	"github.com/de-tools/log-enricher/pkg/runtime/terminal/commands"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional for local runs
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Loader: load,
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(ctx context.Context) (commands.Transformers, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	a, err := app.New(logger.WithContext(ctx), cfg)
	if err != nil {
		return nil, err
	}
	return a, nil
}
