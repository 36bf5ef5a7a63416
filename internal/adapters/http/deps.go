package http

import "context"

// Pinger is a sidecar whose connectivity can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Connected reports a long-lived connection's state.
type Connected interface {
	IsConnected() bool
}

// Dependencies holds what the status server reports on. Nil fields are
// reported as "not configured". The board is not exposed here:
// only the console goroutine touches it.
type Dependencies struct {
	Version string
	Events  Connected
	Mirror  Pinger
}
