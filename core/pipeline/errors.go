package pipeline

import "errors"

var (
	// ErrProtocolViolation means the downstream stages broke the commitment
	// protocol, for example by closing the commitment stream while bytes
	// were still unacknowledged. It is fatal for the tailer.
	ErrProtocolViolation = errors.New("commitment protocol violation")

	ErrInvalidConfig = errors.New("invalid pipeline config")
)
