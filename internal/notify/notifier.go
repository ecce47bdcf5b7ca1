// Package notify fans out record-change events to devices and other services.
package notify

import (
	"context"
	"errors"
	"time"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes one successful mutation.
type Event struct {
	Entity   string    `json:"entity"`
	Action   Action    `json:"action"`
	ID       string    `json:"id"`
	TenantID string    `json:"tenantId,omitempty"`
	At       time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }
func (Nop) Close() error                        { return nil }

// Composite delivers each event to all of its notifiers, even when some fail.
type Composite []Notifier

func (c Composite) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range c {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c Composite) Close() error {
	var errs []error
	for _, n := range c {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
