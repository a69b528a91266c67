package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/router"
)

func TestCollector_RecordTurn(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordTurn("gemini", "success", 200*time.Millisecond)
	c.RecordTurn("gemini", "success", 300*time.Millisecond)
	c.RecordTurn("grok", "error", 50*time.Millisecond)

	if got := testutil.ToFloat64(c.turnsTotal.WithLabelValues("gemini", "success")); got != 2 {
		t.Errorf("gemini success turns = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.turnsTotal.WithLabelValues("grok", "error")); got != 1 {
		t.Errorf("grok error turns = %v, want 1", got)
	}
}

func TestCollector_RecordError(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordError("gemini", "transport")
	c.RecordError("gemini", "transport")
	c.RecordError("gemini", "refusal")

	if got := testutil.ToFloat64(c.errorsTotal.WithLabelValues("gemini", "transport")); got != 2 {
		t.Errorf("transport errors = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.errorsTotal.WithLabelValues("gemini", "refusal")); got != 1 {
		t.Errorf("refusal errors = %v, want 1", got)
	}
}

func TestCollector_SessionsAndChunks(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.SetActiveSessions(7)
	c.AddChunks(3)
	c.AddChunks(2)

	if got := testutil.ToFloat64(c.sessions); got != 7 {
		t.Errorf("sessions gauge = %v, want 7", got)
	}
	if got := testutil.ToFloat64(c.chunksTotal); got != 5 {
		t.Errorf("chunks counter = %v, want 5", got)
	}
}

func TestCollector_Observer(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	obs := c.Observer()

	obs.ObserveTurn(router.TurnEvent{
		Provider: "gemini",
		Latency:  100 * time.Millisecond,
		Reply:    "ok",
	})
	obs.ObserveTurn(router.TurnEvent{
		Provider: "gemini",
		Latency:  100 * time.Millisecond,
		Err:      &providers.RefusalError{Provider: "gemini"},
	})

	if got := testutil.ToFloat64(c.turnsTotal.WithLabelValues("gemini", "success")); got != 1 {
		t.Errorf("success turns = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.errorsTotal.WithLabelValues("gemini", "refusal")); got != 1 {
		t.Errorf("refusal errors = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	c.RecordTurn("gemini", "success", time.Second)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("metrics endpoint returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "relay_turns_total") {
		t.Error("exposition missing relay_turns_total")
	}
}
