package mailbox

import "errors"

var (
	// ErrClosed reports that the peer side of a mailbox has gone away.
	// Receivers see it once every sender clone is closed; it is the normal
	// end-of-stream condition and drives clean shutdown.
	ErrClosed = errors.New("mailbox closed")

	// ErrSendFailed wraps ErrClosed when a value could not be delivered
	// because the receiving side was closed.
	ErrSendFailed = errors.New("send failed")

	// ErrSenderDropped is returned by a oneshot receiver whose sender was
	// closed without sending.
	ErrSenderDropped = errors.New("oneshot sender dropped")

	// ErrOneshotUsed is returned when a oneshot sender is used twice, or when
	// a oneshot receiver is asked again after its value was taken.
	ErrOneshotUsed = errors.New("oneshot already used")
)
