package domain

import "time"

type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// TitleTaskFailed marks notifications raised for failed background tasks.
const TitleTaskFailed = "Background task failed"

type Notification struct {
	Kind   NotificationKind `json:"kind"`
	Title  string           `json:"title"`
	Detail string           `json:"detail"`
	Time   time.Time        `json:"time"`
}

// NotificationSink receives outcome events from the engine. Implementations
// must be safe for concurrent use and must not call back into the engine.
type NotificationSink interface {
	Notify(kind NotificationKind, title, detail string)
}

// RandomSource yields uniformly distributed values in [0, 1).
type RandomSource interface {
	Float64() float64
}
