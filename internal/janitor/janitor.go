// Package janitor periodically sweeps expired entries out of the TTL caches.
package janitor

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner is implemented by the forecast and derived-result caches.
type Pruner interface {
	Prune() int
}

// Janitor runs the sweep on a fixed interval.
type Janitor struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	caches    []Pruner
}

func New(interval time.Duration, caches ...Pruner) *Janitor {
	return &Janitor{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		caches:    caches,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (j *Janitor) Start() error {
	if len(j.caches) == 0 {
		log.Println("janitor: no caches registered; nothing to schedule")
		return nil
	}

	minutes := int(j.interval.Minutes())
	if minutes <= 0 {
		minutes = 5
	}

	_, err := j.scheduler.Every(minutes).Minutes().Do(func() {
		total := 0
		for _, c := range j.caches {
			total += c.Prune()
		}
		if total > 0 {
			log.Printf("janitor: swept %d expired cache entries", total)
		}
	})
	if err != nil {
		return err
	}

	j.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future sweeps.
func (j *Janitor) Stop() {
	if j.scheduler != nil {
		j.scheduler.Stop()
	}
}
