package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Poller pulls updates via long polling and hands them to the binding.
// Each update is processed on its own goroutine; the session store's
// per-session turn lock keeps same-chat messages ordered.
type Poller struct {
	client  *Client
	binding *Binding
	timeout int
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewPoller creates a poller. pollTimeout is the long-poll duration in
// seconds; zero defaults to 50.
func NewPoller(client *Client, binding *Binding, pollTimeout int) *Poller {
	if pollTimeout <= 0 {
		pollTimeout = 50
	}
	return &Poller{
		client:  client,
		binding: binding,
		timeout: pollTimeout,
		logger:  slog.Default().With("component", "telegram.poller"),
	}
}

// Run polls until the context is cancelled, then waits for in-flight
// updates to finish.
func (p *Poller) Run(ctx context.Context) error {
	// Polling and webhooks are mutually exclusive on the Bot API side.
	if err := p.client.DeleteWebhook(ctx); err != nil {
		p.logger.Warn("failed to delete webhook before polling", "error", err)
	}

	p.logger.Info("poller started", "poll_timeout", p.timeout)

	var offset int64
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping, waiting for in-flight updates")
			p.wg.Wait()
			return nil
		default:
		}

		updates, err := p.client.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				p.wg.Wait()
				return nil
			}
			p.logger.Error("getUpdates failed", "error", err)
			// Back off briefly so a dead API does not spin the loop.
			select {
			case <-ctx.Done():
				p.wg.Wait()
				return nil
			case <-time.After(3 * time.Second):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			u := update
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				p.binding.HandleUpdate(ctx, u)
			}()
		}
	}
}
