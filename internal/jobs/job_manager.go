package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultDispatchSchedule = "*/10 * * * * *"
	DefaultRelaySchedule    = "*/2 * * * * *"
	DefaultPruneSchedule    = "@hourly"
)

// Config holds the schedules (six-field cron expressions or descriptors)
// and sizes of the background jobs.
type Config struct {
	DispatchSchedule  string
	DispatchBatchSize int
	RelaySchedule     string
	RelayBatchSize    int
	PruneSchedule     string
	LocationRetention time.Duration
}

func (c Config) withDefaults() Config {
	if c.DispatchSchedule == "" {
		c.DispatchSchedule = DefaultDispatchSchedule
	}
	if c.RelaySchedule == "" {
		c.RelaySchedule = DefaultRelaySchedule
	}
	if c.PruneSchedule == "" {
		c.PruneSchedule = DefaultPruneSchedule
	}
	if c.DispatchBatchSize <= 0 {
		c.DispatchBatchSize = 50
	}
	if c.RelayBatchSize <= 0 {
		c.RelayBatchSize = 100
	}
	if c.LocationRetention <= 0 {
		c.LocationRetention = 24 * time.Hour
	}
	return c
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs  []job
	names []string
}

func NewJobManager(
	dispatch DispatchHandler,
	relay RelayHandler,
	prune PruneHandler,
	cfg Config,
	logger *zap.Logger,
) *JobManager {
	cfg = cfg.withDefaults()
	return &JobManager{
		jobs: []job{
			NewOutboxRelayJob(relay, cfg.RelaySchedule, cfg.RelayBatchSize, logger),
			NewPendingDispatchJob(dispatch, cfg.DispatchSchedule, cfg.DispatchBatchSize, logger),
			NewLocationPruneJob(prune, cfg.PruneSchedule, cfg.LocationRetention, logger),
		},
		names: []string{"outbox relay", "pending dispatch", "location prune"},
	}
}

// StartAll starts every job. If one fails to start, the ones already
// running are stopped.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.Start(); err != nil {
			for k := i - 1; k >= 0; k-- {
				jm.jobs[k].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", jm.names[i], err)
		}
	}
	return nil
}

// StopAll stops all jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for k := len(jm.jobs) - 1; k >= 0; k-- {
		jm.jobs[k].Stop()
	}
}
