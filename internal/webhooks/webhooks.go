// Package webhooks verifies inbound payment-provider notifications and
// turns them into typed events.
//
// Nothing downstream ever sees an unverified payload: the verifier is the
// single entry point, and it authenticates the raw body against the shared
// signing secret before any field is trusted.
package webhooks

import "time"

// EventPaymentSucceeded is the only event type with a modeled side effect.
// Every other type is acknowledged and skipped so the provider stops
// redelivering it.
const EventPaymentSucceeded = "payment_intent.succeeded"

// Event is a verified, typed payment notification. ID is the provider's
// globally unique event id and doubles as the idempotency-ledger key.
type Event struct {
	ID       string
	Type     string
	Source   string
	TaskID   string
	Amount   int64
	Received time.Time
}
