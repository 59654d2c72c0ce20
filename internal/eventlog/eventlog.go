// Package eventlog records completion stream events as line-delimited JSON
// in a timestamped file, one record per event.
package eventlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/davetashner/glmbridge/internal/llm"
)

// record is one NDJSON line.
type record struct {
	Time  time.Time `json:"time"`
	Event llm.Event `json:"event"`
}

// Recorder appends events to a single log file. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	path string
}

// New creates the log directory if needed and opens a timestamped file in
// it, e.g. events-20260826-143000.ndjson.
func New(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("eventlog: create dir: %w", err)
	}

	path := filepath.Join(dir, "events-"+time.Now().Format("20060102-150405")+".ndjson")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec // log file under user-chosen dir
	if err != nil {
		return nil, fmt.Errorf("eventlog: open %s: %w", path, err)
	}

	return &Recorder{
		file: file,
		enc:  json.NewEncoder(file),
		path: path,
	}, nil
}

// Path returns the log file path.
func (r *Recorder) Path() string { return r.path }

// Record appends one event.
func (r *Recorder) Record(ev llm.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enc.Encode(record{Time: time.Now().UTC(), Event: ev})
}

// Close flushes and closes the log file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}

// Wrap returns a stream that records every event as it is consumed and
// forwards everything else to the wrapped stream unchanged. Recording
// failures are logged, not surfaced; the stream's own contract is untouched.
func (r *Recorder) Wrap(s llm.Stream) llm.Stream {
	return &recordingStream{Stream: s, rec: r}
}

type recordingStream struct {
	llm.Stream
	rec *Recorder
}

func (s *recordingStream) Next() bool {
	if !s.Stream.Next() {
		return false
	}
	if err := s.rec.Record(s.Stream.Current()); err != nil {
		slog.Warn("event log write failed", "path", s.rec.path, "error", err)
	}
	return true
}
