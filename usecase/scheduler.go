package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"
	"tokenomics/domain"

	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

type scheduledTask struct {
	name     string
	interval time.Duration
	run      Task
}

// Scheduler runs background tasks on fixed intervals. Failures and panics of a
// task are reported to the sink and never stop the loop. Stop prevents further
// runs and waits for a run that is already in flight.
type Scheduler struct {
	sink domain.NotificationSink

	mu      sync.Mutex
	tasks   []scheduledTask
	quit    chan struct{}
	wg      sync.WaitGroup
	started bool
	stopped bool
}

func NewScheduler(sink domain.NotificationSink) *Scheduler {
	return &Scheduler{
		sink: sink,
		quit: make(chan struct{}),
	}
}

// Every registers a task. Tasks registered after Start are ignored.
func (scheduler *Scheduler) Every(name string, interval time.Duration, run Task) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.started {
		log.Warn().Str("task", name).Msg("scheduler already started, task ignored")
		return
	}
	scheduler.tasks = append(scheduler.tasks, scheduledTask{name: name, interval: interval, run: run})
}

func (scheduler *Scheduler) Start(ctx context.Context) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.started || scheduler.stopped {
		return
	}
	scheduler.started = true

	for _, task := range scheduler.tasks {
		scheduler.wg.Add(1)
		go scheduler.loop(ctx, task)
	}
}

func (scheduler *Scheduler) loop(ctx context.Context, task scheduledTask) {
	defer scheduler.wg.Done()

	ticker := time.NewTicker(task.interval)
	defer ticker.Stop()

	for {
		select {

		case <-ticker.C:
			// A stop signal that raced with the tick wins.
			select {
			case <-scheduler.quit:
				return
			default:
			}

			ticker.Stop()
			scheduler.runOnce(ctx, task)
			ticker.Reset(task.interval)

		case <-scheduler.quit:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (scheduler *Scheduler) runOnce(ctx context.Context, task scheduledTask) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("task", task.name).Interface("panic", r).Msg("🔴 scheduled task panicked")
			scheduler.sink.Notify(domain.NotifyWarning, domain.TitleTaskFailed, fmt.Sprintf("%v panicked: %v", task.name, r))
		}
	}()

	start := time.Now()
	if err := task.run(ctx); err != nil {
		log.Warn().Err(err).Str("task", task.name).Msg("🔴 scheduled task failed")
		scheduler.sink.Notify(domain.NotifyWarning, domain.TitleTaskFailed, fmt.Sprintf("%v: %v", task.name, err))
		return
	}
	log.Debug().Str("task", task.name).Dur("took", time.Since(start)).Msg("scheduled task done")
}

// Stop is idempotent.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if scheduler.stopped {
		scheduler.mu.Unlock()
		return
	}
	scheduler.stopped = true
	close(scheduler.quit)
	scheduler.mu.Unlock()

	scheduler.wg.Wait()
}
