package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfortin-ynov/weather-report-service/internal/weather"
)

// Scheduler periodically saves weather reports for configured cities.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(cities []string, interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no cities configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running report save job")

		// Reports are saved one city at a time: the log file assumes a
		// single writer and concurrent appends can lose entries.
		for _, city := range s.cities {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			saved, err := s.service.SaveWeatherReport(ctx, city)
			cancel()

			if err != nil {
				log.Printf("scheduler: report write failed for %s: %v", city, err)
				continue
			}
			if !saved {
				log.Printf("scheduler: no weather data for %s; report skipped", city)
			}
		}
		log.Println("scheduler: completed report save job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
