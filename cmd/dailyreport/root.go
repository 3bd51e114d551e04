package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/config"
	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/newsapi"
	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/report"
	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/store"
	"github.com/RobinCoderZhao/daily-report/pkg/logging"
)

// app carries the loaded configuration between cobra hooks and commands.
type app struct {
	configPath string
	cfg        config.Config
	logCloser  io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	runCmd := newRunCmd(a)
	rootCmd := &cobra.Command{
		Use:           "dailyreport",
		Short:         "Fetch daily AI, business and crypto news and deliver it",
		Long:          "dailyreport fetches the top AI, business and cryptocurrency articles from NewsAPI and emails them as a plain-text report.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
		RunE: runCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./dailyreport.yaml or $XDG_CONFIG_HOME/dailyreport/config.yaml)")
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newJSONCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	a.logCloser = closer
	return nil
}

func (a *app) assembler() (*report.Assembler, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return report.NewAssembler(newsapi.NewClient(a.cfg.NewsAPI)), nil
}

// openStore returns nil when no history database is configured.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if !a.cfg.Storage.Enabled() {
		return nil, nil
	}
	s, err := store.Open(ctx, a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open report store: %w", err)
	}
	return s, nil
}

// archive stores the report when history is enabled. Failures are logged only.
func (a *app) archive(ctx context.Context, r *report.Report) {
	s, err := a.openStore(ctx)
	if err != nil {
		slog.Warn("report not archived", "error", err)
		return
	}
	if s == nil {
		return
	}
	defer s.Close()
	id, err := s.Save(ctx, r)
	if err != nil {
		slog.Warn("report not archived", "error", err)
		return
	}
	slog.Info("report archived", "id", id)
}
