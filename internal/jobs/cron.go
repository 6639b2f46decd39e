package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// runTimeout bounds a single job run so a stuck database call cannot hold
// the schedule forever.
const runTimeout = 30 * time.Second

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}

// newCron returns a seconds-aware scheduler that recovers panics and skips
// a tick while the previous run is still busy.
func newCron(logger *zap.Logger) *cron.Cron {
	cl := cronLogger{sugar: logger.Sugar()}
	return cron.New(
		cron.WithSeconds(),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// scheduledJob is the common start/stop plumbing of every job.
type scheduledJob struct {
	name     string
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
	run      func(ctx context.Context)
}

func newScheduledJob(name, schedule string, logger *zap.Logger, run func(ctx context.Context)) *scheduledJob {
	logger = logger.With(zap.String("component", name))
	return &scheduledJob{
		name:     name,
		schedule: schedule,
		cron:     newCron(logger),
		logger:   logger,
		run:      run,
	}
}

func (j *scheduledJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		j.run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running invocation to finish.
func (j *scheduledJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Job stopped")
}
