package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/log-enricher/pkg/app"
	"github.com/de-tools/log-enricher/pkg/config"
	"github.com/de-tools/log-enricher/pkg/logging"
	"github.com/de-tools/log-enricher/pkg/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the local replay server for the log enricher",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&envPath, "env", "e", ".env", "Path to the .env file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	transformers, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize transformers: %w", err)
	}

	if cfg.ServerHost == "" || cfg.ServerPort == "" {
		return fmt.Errorf("SERVER_HOST and SERVER_PORT must be set")
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
		Dependencies: server.Dependencies{
			Transformers: transformers,
			Logger:       logger,
		},
	})

	logger.Info().Strs("variants", transformers.ListVariants()).Msg("transformers ready")
	return api.Start()
}
