package transcript

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"lumos-hq/relay/pkg/providers"
	"lumos-hq/relay/pkg/router"
)

// Config contains configuration for the transcript recorder.
type Config struct {
	// Enabled enables transcript recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000
	AsyncBuffer int

	// WriteTimeout is the timeout for a single storage write.
	// Default: 5 seconds
	WriteTimeout time.Duration

	// MaxPreviewLength is the maximum reply preview length before
	// truncation. Default: 500
	MaxPreviewLength int
}

// DefaultConfig returns the default recorder configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:          true,
		AsyncBuffer:      1000,
		WriteTimeout:     5 * time.Second,
		MaxPreviewLength: 500,
	}
}

// Recorder turns router events into transcript records and writes them
// asynchronously. It implements router.Observer, so a slow or failing
// storage backend never blocks a turn: a full buffer drops the record
// and logs, nothing more.
type Recorder struct {
	storage    Storage
	config     *Config
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	logger     *slog.Logger
}

// NewRecorder creates a transcript recorder over the given storage and
// starts the background writer.
func NewRecorder(storage Storage, config *Config) *Recorder {
	if config == nil {
		config = DefaultConfig()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     slog.Default().With("component", "transcript.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("transcript recorder initialized",
		"async_buffer", config.AsyncBuffer,
		"write_timeout", config.WriteTimeout,
	)

	return r
}

// ObserveTurn queues a record for the completed or failed turn. It
// returns immediately.
func (r *Recorder) ObserveTurn(ev router.TurnEvent) {
	if !r.config.Enabled {
		return
	}

	record := &Record{
		ID:        uuid.New().String(),
		SessionID: ev.SessionID,
		Provider:  ev.Provider,
		Outcome:   OutcomeOK,
		LatencyMS: ev.Latency.Milliseconds(),
		CreatedAt: time.Now(),
	}
	if ev.Err != nil {
		record.Outcome = OutcomeError
		record.ErrorKind = string(providers.KindOf(ev.Err))
	} else {
		record.ReplyPreview = truncate(ev.Reply, r.config.MaxPreviewLength)
	}

	select {
	case r.recordChan <- record:
	default:
		r.logger.Warn("transcript buffer full, dropping record",
			"session_id", ev.SessionID,
		)
	}
}

// Close drains pending records and stops the writer.
func (r *Recorder) Close() error {
	r.logger.Info("shutting down transcript recorder")
	close(r.done)
	r.wg.Wait()
	return nil
}

func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.writeRecord(record)

		case <-r.done:
			// Drain remaining records before exit.
			for {
				select {
				case record := <-r.recordChan:
					r.writeRecord(record)
				default:
					r.logger.Debug("transcript channel drained")
					return
				}
			}
		}
	}
}

func (r *Recorder) writeRecord(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Store(ctx, record); err != nil {
		r.logger.Error("failed to store transcript record",
			"record_id", record.ID,
			"session_id", record.SessionID,
			"error", err,
		)
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
