package app

import (
	"context"

	pkgcron "github.com/irbrowse/core/internal/pkg/cron"
)

func (a *App) registerCronJobs() {
	a.sched.Register(pkgcron.Job{
		Name:        "summary-cache-sweep",
		Description: "Remove expired document summaries from the cache",
		Interval:    a.cfg.SweepInterval(),
		Fn: func(ctx context.Context) error {
			return a.cache.RemoveExpired(ctx)
		},
	})
}
