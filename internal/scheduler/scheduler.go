package scheduler

import (
	"context"
	"time"

	"github.com/afriverse/editorial-api/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the scheduled-publish sweep on a cron schedule. The sweep
// itself is idempotent, so an overlapping or repeated run is harmless.
type Scheduler struct {
	cron         *cron.Cron
	workflow     service.WorkflowService
	log          zerolog.Logger
	sweepEntryID cron.EntryID
}

// New creates a scheduler around the workflow service
func New(workflow service.WorkflowService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		workflow: workflow,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the sweep job and starts the cron loop
func (s *Scheduler) Start(schedule string) error {
	id, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		published, err := s.workflow.PublishDueScheduled(ctx, time.Now())
		if err != nil {
			s.log.Error().Err(err).Msg("Publish sweep failed")
			return
		}
		if published > 0 {
			s.log.Info().Int("published", published).Msg("Publish sweep done")
		}
	})
	if err != nil {
		return err
	}
	s.sweepEntryID = id

	s.cron.Start()
	s.log.Info().Str("schedule", schedule).Msg("Scheduler started")
	return nil
}

// NextSweep returns the next scheduled sweep time
func (s *Scheduler) NextSweep() time.Time {
	return s.cron.Entry(s.sweepEntryID).Next
}

// Stop halts the cron loop and waits for a running sweep to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler stopped")
}
