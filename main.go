package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"calrem/pkg/config"
	"calrem/pkg/log"
	"calrem/pkg/reminders"
	"calrem/pkg/scheduler"
	"calrem/pkg/storage"
)

func main() {
	root := &cobra.Command{
		Use:           "calrem",
		Short:         "Month calendar with timed reminders",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	if err := root.Execute(); err != nil {
		log.Error("exiting", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	clk := clock.New()
	store := reminders.NewStore(storage.New(cfg.DataDir), clk)

	// Reminders that came due while the app was closed are dropped here,
	// before the scheduler starts, so they are never re-fired.
	if removed := store.CleanupExpired(clk.Now()); removed > 0 {
		log.Info("removed expired reminders", "count", removed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(store, clk)

	sched := scheduler.New(store, a.notifyDue, clk, cfg.PollInterval)
	go sched.Run(ctx)

	return a.run(ctx, os.Stdin)
}
