package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/publisher"
	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/scheduler"
	"github.com/RobinCoderZhao/daily-report/pkg/notify"
)

func newRunCmd(a *app) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the report and email it (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assembler, err := a.assembler()
			if err != nil {
				return err
			}

			pub := publisher.NewPublisher(a.dispatcher(), cmd.OutOrStdout())
			job := func(ctx context.Context) error {
				r, err := assembler.Assemble(ctx)
				if err != nil {
					return err
				}
				a.archive(ctx, r)
				pub.Deliver(ctx, r.Text(a.cfg.Report.Footer))
				return nil
			}

			if every <= 0 {
				return job(cmd.Context())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			s := scheduler.New()
			s.Add(scheduler.Job{Name: "daily-report", Fn: job})
			s.Start(ctx, every)
			return nil
		},
	}

	cmd.Flags().DurationVar(&every, "every", 0, "repeat on this interval (e.g. 24h) until interrupted")
	return cmd
}

func (a *app) dispatcher() *notify.Dispatcher {
	d := notify.NewDispatcher()
	d.Register(notify.NewEmailNotifier(a.cfg.Email))
	if a.cfg.Webhook.URL != "" {
		d.Register(notify.NewWebhookNotifier(a.cfg.Webhook))
	}
	return d
}
