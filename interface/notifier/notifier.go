package notifier

import (
	"sync"
	"time"
	"tokenomics/domain"

	"github.com/rs/zerolog/log"
)

// LogSink writes notifications to the structured log.
type LogSink struct{}

func (LogSink) Notify(kind domain.NotificationKind, title, detail string) {
	event := log.Info()
	switch kind {
	case domain.NotifyWarning:
		event = log.Warn()
	case domain.NotifyError:
		event = log.Error()
	}
	event.Str("kind", string(kind)).Str("detail", detail).Msg(title)
}

// FanOut forwards every notification to all of its sinks in order.
type FanOut []domain.NotificationSink

func (sinks FanOut) Notify(kind domain.NotificationKind, title, detail string) {
	for _, sink := range sinks {
		sink.Notify(kind, title, detail)
	}
}

// Recorder keeps notifications in memory, newest last, up to a limit.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []domain.Notification
	clock func() time.Time
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit, clock: time.Now}
}

func (recorder *Recorder) Notify(kind domain.NotificationKind, title, detail string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	recorder.items = append(recorder.items, domain.Notification{
		Kind:   kind,
		Title:  title,
		Detail: detail,
		Time:   recorder.clock(),
	})
	if recorder.limit > 0 && len(recorder.items) > recorder.limit {
		recorder.items = recorder.items[len(recorder.items)-recorder.limit:]
	}
}

func (recorder *Recorder) Notifications() []domain.Notification {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	items := make([]domain.Notification, len(recorder.items))
	copy(items, recorder.items)
	return items
}

// Count returns how many recorded notifications are of the given kind.
func (recorder *Recorder) Count(kind domain.NotificationKind) int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()

	count := 0
	for _, item := range recorder.items {
		if item.Kind == kind {
			count++
		}
	}
	return count
}

func (recorder *Recorder) Reset() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.items = nil
}
