package metrics

import (
	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/router"
)

// Observer adapts the collector to the router's turn events.
func (c *Collector) Observer() router.Observer {
	return router.ObserverFunc(func(ev router.TurnEvent) {
		if ev.Err != nil {
			c.RecordTurn(ev.Provider, "error", ev.Latency)
			c.RecordError(ev.Provider, string(providers.KindOf(ev.Err)))
			return
		}
		c.RecordTurn(ev.Provider, "success", ev.Latency)
	})
}
