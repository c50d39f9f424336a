package notification

import "context"

type DispatchInput struct {
	RecipientID    string
	RecipientEmail string // empty when unknown; email escalation is skipped
	Title          string
	Message        string
	Payload        Payload
}

// Dispatcher persists a notification for one recipient and optionally
// escalates it to an external channel. Fire-and-forget from the caller's
// perspective: failures are logged at the call site, never rolled back into
// the business transition that triggered them.
type Dispatcher interface {
	Dispatch(ctx context.Context, in DispatchInput) error
}
