// Package terminal is the command-line surface: it wires the backend
// clients and the chart controller and renders the results as text.
package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/nicolasberthel/enerfolio/pkg/cache"
	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"github.com/nicolasberthel/enerfolio/pkg/observability/metrics"
	"github.com/nicolasberthel/enerfolio/pkg/services/chart"
	"github.com/nicolasberthel/enerfolio/pkg/services/config"
	"github.com/nicolasberthel/enerfolio/pkg/services/portfolio"
	"github.com/nicolasberthel/enerfolio/pkg/services/timeseries"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface.
type CLI struct {
	reporter *Reporter
	rootCmd  *cobra.Command

	cfgPath     string
	meter       string
	user        string
	date        string
	granularity string
}

// Options contain configuration for the CLI.
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance.
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{reporter: NewReporter(opts.Output)}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enerfolio",
		Short: "Energy investment chart and portfolio tool",
	}
	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "",
		"Path to the yaml config file (env vars apply when omitted)")

	cmd.AddCommand(cli.newChartCmd())
	cmd.AddCommand(cli.newPortfolioCmd())
	cmd.AddCommand(cli.newProjectsCmd())

	return cmd
}

func (cli *CLI) newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the reconciled consumption/production chart for a meter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svc, err := cli.wire()
			if err != nil {
				return err
			}

			meter := cli.meter
			user := cli.user
			if user == "" {
				user = cfg.Defaults.User
			}

			ctx := cmd.Context()
			p, err := svc.portfolio.GetPortfolio(ctx, user)
			if err != nil {
				return err
			}
			if meter == "" {
				meter = p.MeterID
			}

			refDate := time.Now().UTC()
			if cli.date != "" {
				refDate, err = time.Parse("2006-01-02", cli.date)
				if err != nil {
					return err
				}
			}
			granularity, err := domain.ParseGranularity(cli.granularity)
			if err != nil {
				return err
			}

			data, err := svc.chart.Build(ctx, chart.Request{
				MeterID:       meter,
				Investments:   p.Investments,
				ReferenceDate: refDate,
				Granularity:   granularity,
			})
			if err != nil {
				return err
			}
			return cli.reporter.HandleChart(data)
		},
	}
	cmd.Flags().StringVar(&cli.meter, "meter", "", "Meter (POD) identifier, defaults to the portfolio's meter")
	cmd.Flags().StringVar(&cli.user, "user", "", "Portfolio user id")
	cmd.Flags().StringVar(&cli.date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&cli.granularity, "granularity", "day", "day, week, month or year")
	return cmd
}

func (cli *CLI) newPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Print the portfolio valuation recomputed from transaction histories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, svc, err := cli.wire()
			if err != nil {
				return err
			}
			user := cli.user
			if user == "" {
				user = cfg.Defaults.User
			}

			ctx := cmd.Context()
			p, err := svc.portfolio.GetPortfolio(ctx, user)
			if err != nil {
				return err
			}
			prices, err := currentPrices(ctx, svc.portfolio)
			if err != nil {
				return err
			}

			valuations := make([]domain.InvestmentValuation, 0, len(p.Investments))
			for _, inv := range p.Investments {
				valuations = append(valuations, portfolio.Valuate(inv, prices[inv.ProjectID]))
			}
			return cli.reporter.HandlePortfolio(user, valuations, portfolio.Summarize(valuations))
		},
	}
	cmd.Flags().StringVar(&cli.user, "user", "", "Portfolio user id")
	return cmd
}

func (cli *CLI) newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List investable projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, svc, err := cli.wire()
			if err != nil {
				return err
			}
			projects, err := svc.portfolio.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return cli.reporter.HandleProjects(projects)
		},
	}
}

type services struct {
	chart     *chart.Controller
	portfolio *portfolio.Client
}

func (cli *CLI) wire() (*config.Config, *services, error) {
	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return nil, nil, err
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

	return cfg, &services{chart: controller, portfolio: portfolioClient}, nil
}

func currentPrices(ctx context.Context, client *portfolio.Client) (map[string]float64, error) {
	projects, err := client.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(projects))
	for _, p := range projects {
		prices[p.ID] = p.SharePrice
	}
	return prices, nil
}
