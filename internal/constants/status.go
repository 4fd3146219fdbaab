package constants

// TaskStatus is the task lifecycle status. It is distinct from the
// narrower PaymentStatus field, which is owned by payment reconciliation.
type TaskStatus string

const (
	StatusOpen          TaskStatus = "Open"
	StatusInProgress    TaskStatus = "In Progress"
	StatusCompleted     TaskStatus = "Completed"
	StatusPaid          TaskStatus = "Paid"
	StatusPayDeclined   TaskStatus = "Pay Declined"
	StatusPayProcessing TaskStatus = "Pay Processing"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "Unpaid"
	PaymentPaid   PaymentStatus = "Paid"
)

type OfferStatus string

const (
	OfferPending  OfferStatus = "Pending"
	OfferAccepted OfferStatus = "Accepted"
	OfferRejected OfferStatus = "Rejected"
)

// EventStatus drives the webhook idempotency ledger. A record's status is
// the single source of truth for "has this event already been applied".
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventSuccess  EventStatus = "success"
	EventRejected EventStatus = "rejected"
)

type Role string

const (
	RoleCustomer        Role = "customer"
	RoleServiceProvider Role = "service_provider"
)
