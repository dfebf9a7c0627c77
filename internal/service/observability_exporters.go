package service

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq uint64

// OperationStats aggregates the outcomes of one service operation.
type OperationStats struct {
	Success     int64   `json:"success_total"`
	Error       int64   `json:"error_total"`
	DurationMS  float64 `json:"duration_ms_total"`
	LastStatus  string  `json:"last_status"`
	LastSeenUTC string  `json:"last_seen_utc"`
}

// ExpvarMetricsRecorder publishes per-operation counters and timing totals
// via expvar. It fulfills MetricsRecorder for deployments that prefer
// process-local metrics without a scrape endpoint.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]OperationStats
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder and publishes
// it under the supplied name. When name is empty, a unique identifier is
// generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("ride_service_metrics_%d", atomic.AddUint64(&expvarSeq, 1))
	}
	rec := &ExpvarMetricsRecorder{name: name, ops: make(map[string]OperationStats)}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Snapshot returns an immutable copy of the aggregated per-operation stats.
func (r *ExpvarMetricsRecorder) Snapshot() map[string]OperationStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]OperationStats, len(r.ops))
	for op, stats := range r.ops {
		out[op] = stats
	}
	return out
}

// Observe records a service operation outcome.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := r.ops[operation]
	if success {
		stats.Success++
		stats.LastStatus = "success"
	} else {
		stats.Error++
		stats.LastStatus = "error"
	}
	stats.DurationMS += float64(duration) / float64(time.Millisecond)
	stats.LastSeenUTC = time.Now().UTC().Format(time.RFC3339)
	r.ops[operation] = stats
}

// JSONLogger writes structured log events as JSON lines. It fulfills Logger
// for deployments that want the service's operation logs on a stream.
type JSONLogger struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ Logger = (*JSONLogger)(nil)

// NewJSONLogger constructs a logger that writes one JSON object per event to
// w. A nil writer discards all events.
func NewJSONLogger(w io.Writer) *JSONLogger {
	l := &JSONLogger{}
	if w != nil {
		l.enc = json.NewEncoder(w)
	}
	return l
}

func (l *JSONLogger) Debug(msg string, keyvals ...any) { l.log("debug", msg, keyvals) }
func (l *JSONLogger) Info(msg string, keyvals ...any)  { l.log("info", msg, keyvals) }
func (l *JSONLogger) Warn(msg string, keyvals ...any)  { l.log("warn", msg, keyvals) }
func (l *JSONLogger) Error(msg string, keyvals ...any) { l.log("error", msg, keyvals) }

func (l *JSONLogger) log(level, msg string, keyvals []any) {
	if l.enc == nil {
		return
	}
	entry := map[string]any{
		"time":  time.Now().UTC().Format(time.RFC3339),
		"level": level,
		"msg":   msg,
	}
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		entry[key] = keyvals[i+1]
	}
	l.mu.Lock()
	_ = l.enc.Encode(entry)
	l.mu.Unlock()
}

// JSONTraceEntry is one serialized span emitted by JSONTraceTracer.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// JSONTraceTracer serializes spans as JSON lines to a writer and retains them
// for inspection via Entries.
type JSONTraceTracer struct {
	mu      sync.Mutex
	entries []JSONTraceEntry
	enc     *json.Encoder
}

// NewJSONTracer constructs a tracer writing to w; a nil writer retains spans
// without emitting them.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	t := &JSONTraceTracer{}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// Entries returns a copy of all recorded spans.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]JSONTraceEntry(nil), t.entries...)
}

// Start implements the Tracer interface.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonTraceSpan{tracer: t, operation: operation, started: time.Now().UTC()}
}

type jsonTraceSpan struct {
	tracer    *JSONTraceTracer
	operation string
	started   time.Time
}

func (s *jsonTraceSpan) End(err error) {
	ended := time.Now().UTC()
	entry := JSONTraceEntry{
		Operation:  s.operation,
		Status:     "success",
		DurationMS: float64(ended.Sub(s.started)) / float64(time.Millisecond),
		StartedAt:  s.started,
		EndedAt:    ended,
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}
	s.tracer.mu.Lock()
	s.tracer.entries = append(s.tracer.entries, entry)
	if s.tracer.enc != nil {
		_ = s.tracer.enc.Encode(entry)
	}
	s.tracer.mu.Unlock()
}
