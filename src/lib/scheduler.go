package lib

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs in-process maintenance jobs.
type Scheduler struct {
	inner gocron.Scheduler
}

func NewScheduler() (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		log.Printf("Error initializing Scheduler: %s\n", err.Error())
		return nil, err
	}
	return &Scheduler{inner: sched}, nil
}

// WrapScheduler replaces the gocron instance with a custom implementation.
func WrapScheduler(s gocron.Scheduler) *Scheduler {
	return &Scheduler{inner: s}
}

// Every registers task to run on a fixed interval. A run that is still
// going when the next one is due causes that next run to be skipped.
func (s *Scheduler) Every(name string, d time.Duration, task func(ctx context.Context)) (string, error) {
	j, err := s.inner.NewJob(
		gocron.DurationJob(d),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Error creating job %s: %s\n", name, err.Error())
		return "", err
	}
	id := j.ID().String()
	log.Printf("[scheduler] %s runs every %s: %s\n", name, d, id)
	return id, nil
}

func (s *Scheduler) Once(name string, at time.Time, task func(ctx context.Context)) (string, error) {
	j, err := s.inner.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(at)),
		gocron.NewTask(task),
		gocron.WithName(name),
	)
	if err != nil {
		log.Printf("Error creating job %s: %s\n", name, err.Error())
		return "", err
	}
	id := j.ID().String()
	log.Printf("[scheduler] %s scheduled on %s: %s\n", name, at.Format(time.RFC3339), id)
	return id, nil
}

func (s *Scheduler) Jobs() int {
	return len(s.inner.Jobs())
}

func (s *Scheduler) Start() {
	s.inner.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.inner.Shutdown()
}
