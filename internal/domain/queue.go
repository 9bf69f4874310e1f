package domain

import (
	"context"
	"time"
)

// Task types handled by the background worker.
const (
	TaskSendConfirmationEmail = "send_confirmation_email"
	TaskSetFeaturedSpeaker    = "set_featured_speaker"
	TaskSetAnnouncement       = "set_announcement"
)

// Task parameter keys.
const (
	TaskParamEmail          = "email"
	TaskParamConferenceInfo = "conference_info"
	TaskParamSpeaker        = "speaker"
	TaskParamConferenceID   = "conference_id"
)

// Task is a named background job with string parameters. Delivery is
// at-least-once and unordered; handlers must be idempotent.
type Task struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params"`
}

// TaskQueue accepts tasks for asynchronous processing (infrastructure port).
type TaskQueue interface {
	Enqueue(ctx context.Context, task *Task) error
}

// TaskConsumer pops tasks for the background worker.
type TaskConsumer interface {
	// Dequeue blocks up to timeout and returns nil when no task arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)
}
