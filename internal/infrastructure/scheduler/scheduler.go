package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
)

// Scheduler repeats the whole backup run on a cron spec (seconds field
// included). Job errors are reported through onError instead of being
// swallowed, since scheduled runs have no exit code to carry them.
type Scheduler struct {
	cron    *cron.Cron
	onError func(error)
}

func New(onError func(error)) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		onError: onError,
	}
}

func (s *Scheduler) Schedule(spec string, job func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := job(context.Background()); err != nil && s.onError != nil {
			s.onError(err)
		}
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
