package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/brvagas/jobhub/internal/jobsource"
	"github.com/brvagas/jobhub/internal/refresh"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the job list refreshed in the background",
	Long:  "Run the background refresher: the job list is re-fetched on the configured interval and, when redis is configured, snapshotted so outages degrade to stale data.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	var cache *refresh.Cache
	if a.cfg.RedisURL != "" {
		rdb, err := refresh.NewRedisClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = refresh.NewCache(rdb)
	}

	interval := time.Duration(a.cfg.RefreshInterval) * time.Hour
	r := refresh.New(a.jobs, jobsource.Query{}, cache, a.logger, interval)
	if err := r.Start(ctx); err != nil {
		return err
	}
	defer r.Stop()

	unsubscribe := a.jobs.Subscribe(func() {
		fmt.Fprintf(os.Stdout, "%s: %d vagas carregadas\n",
			time.Now().Format("15:04:05"), len(a.jobs.Jobs()))
	})
	defer unsubscribe()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
