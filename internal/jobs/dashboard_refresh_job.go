package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/straye-as/sales-intelligence/internal/service"
	"go.uber.org/zap"
)

// DashboardRefreshJobName is the scheduler name of the dashboard refresh
const DashboardRefreshJobName = "dashboard_refresh"

// DashboardLoader loads one dashboard snapshot
type DashboardLoader interface {
	Load(ctx context.Context) (*service.Dashboard, error)
}

// RenderFunc receives every loaded dashboard, complete or partial
type RenderFunc func(d *service.Dashboard, err error)

// DashboardRefreshJob reloads the dashboard on each tick and hands the
// result to a renderer. An authentication failure stops further refreshes
// and is reported once on Done.
type DashboardRefreshJob struct {
	loader  DashboardLoader
	render  RenderFunc
	logger  *zap.Logger
	timeout time.Duration

	done    chan error
	stopped bool
}

// NewDashboardRefreshJob creates a refresh job. The timeout bounds each load.
func NewDashboardRefreshJob(loader DashboardLoader, render RenderFunc, logger *zap.Logger, timeout time.Duration) *DashboardRefreshJob {
	return &DashboardRefreshJob{
		loader:  loader,
		render:  render,
		logger:  logger,
		timeout: timeout,
		done:    make(chan error, 1),
	}
}

// Run performs one refresh. The scheduler never runs two at once.
func (j *DashboardRefreshJob) Run() {
	if j.stopped {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	d, err := j.loader.Load(ctx)
	j.render(d, err)

	if errors.Is(err, service.ErrNotAuthenticated) {
		j.stopped = true
		j.logger.Warn("dashboard refresh stopped: not authenticated")
		j.done <- err
		return
	}

	fields := []zap.Field{zap.Duration("duration", time.Since(start))}
	if err != nil {
		j.logger.Warn("dashboard refresh incomplete", append(fields, zap.Error(err))...)
		return
	}
	j.logger.Debug("dashboard refreshed", fields...)
}

// Done yields an error once the job has stopped itself
func (j *DashboardRefreshJob) Done() <-chan error {
	return j.done
}

// RegisterDashboardRefreshJob schedules job under DashboardRefreshJobName.
// If runNow is true the first refresh happens immediately, before the first tick.
func RegisterDashboardRefreshJob(scheduler *Scheduler, job *DashboardRefreshJob, cronExpr string, runNow bool) error {
	if runNow {
		job.Run()
	}
	return scheduler.AddJob(DashboardRefreshJobName, cronExpr, job.Run)
}
