package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/cache"
	"github.com/nicolasberthel/enerfolio/pkg/observability/metrics"
	"github.com/nicolasberthel/enerfolio/pkg/server"
	"github.com/nicolasberthel/enerfolio/pkg/services/chart"
	"github.com/nicolasberthel/enerfolio/pkg/services/config"
	"github.com/nicolasberthel/enerfolio/pkg/services/portfolio"
	"github.com/nicolasberthel/enerfolio/pkg/services/timeseries"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the energy investment dashboard engine",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the yaml config file (env vars apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	metrics.Init()

	seriesClient := timeseries.NewClient(timeseries.Options{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		PageSize: cfg.Backend.PageSize,
	})
	portfolioClient := portfolio.NewClient(portfolio.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	controller := chart.NewController(seriesClient, chart.WithCache(cache.NewMemory()))

	logger.Info().Str("backend", cfg.Backend.BaseURL).Msg("backend configured")

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Chart:       controller,
			Portfolio:   portfolioClient,
			DefaultUser: cfg.Defaults.User,
			Logger:      logger,
		},
	})

	return api.Start()
}
