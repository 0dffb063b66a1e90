package audit

// Package audit records gatekeeper decisions for incident triage.
// Recording is strictly fire-and-forget: the request pipeline never waits on
// the audit trail, and a full buffer drops events instead of blocking.

import (
	"context"
	"time"
)

// Outcome is the terminal state of one gatekeeper execution.
type Outcome string

const (
	OutcomePublicPass    Outcome = "public_pass"
	OutcomeForwarded     Outcome = "forwarded"
	OutcomeRedirectLogin Outcome = "redirect_login"
	OutcomeRedirectRole  Outcome = "redirect_role"
	OutcomeRedirectSetup Outcome = "redirect_setup"
	OutcomeError         Outcome = "error"
)

// Event is one audited gate decision.
type Event struct {
	Time     time.Time
	Path     string
	Category string
	Outcome  Outcome
	// Reason carries the failing step or error code for non-forwarded
	// outcomes; empty otherwise.
	Reason   string
	UserID   string
	ClientID string
}

// Recorder accepts events without blocking.
type Recorder interface {
	Record(ev Event)
}

// Sink persists events. Implementations live in internal/data.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// NopRecorder discards all events. Used when auditing is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(Event) {}
