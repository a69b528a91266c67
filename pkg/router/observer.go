package router

import "time"

// TurnEvent describes one completed or failed turn. Err is nil on
// success; Reply is empty on failure.
type TurnEvent struct {
	SessionID string
	Provider  string
	Latency   time.Duration
	Reply     string
	Err       error
}

// Observer receives a TurnEvent after every turn. Observers run on the
// turn's goroutine and must return quickly; slow work belongs behind a
// channel.
type Observer interface {
	ObserveTurn(ev TurnEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev TurnEvent)

func (f ObserverFunc) ObserveTurn(ev TurnEvent) {
	f(ev)
}
