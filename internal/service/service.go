// Package service exposes the higher-level ride-logging operations: recording
// rides against the rolling-stock dataset, importing and exporting ride
// history, and instrumenting every operation with metrics and traces.
package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"subwaylog/internal/blob"
	"subwaylog/internal/classifier"
	"subwaylog/internal/dataset"
	"subwaylog/internal/ledger"
	"subwaylog/pkg/domain"
)

// UnknownModel is recorded when a car number matches no rolling-stock range.
const UnknownModel = "Unknown"

// Service coordinates the dataset store, the ride ledger, and the export
// blob store behind a single instrumented API.
type Service struct {
	dataset *dataset.Store
	ledger  *ledger.Ledger
	blobs   blob.Store
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	now     func() time.Time
	newID   func() string
}

// Option customizes Service construction.
type Option func(*Service)

// WithLogger installs a structured logger. Nil is ignored.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder installs a metrics recorder for operation outcomes.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer installs a tracer wrapping each operation in a span.
func WithTracer(t Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithBlobStore installs the destination for exported ride documents.
func WithBlobStore(b blob.Store) Option {
	return func(s *Service) {
		if b != nil {
			s.blobs = b
		}
	}
}

// WithClock overrides the timestamp source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides ride ID generation, primarily for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// New constructs a service over the supplied key-value store.
func New(kv domain.KeyValue, opts ...Option) *Service {
	s := &Service{
		dataset: dataset.NewStore(kv),
		ledger:  ledger.New(kv),
		logger:  noopLogger{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dataset returns the underlying dataset store.
func (s *Service) Dataset() *dataset.Store { return s.dataset }

// Ledger returns the underlying ride ledger.
func (s *Service) Ledger() *ledger.Ledger { return s.ledger }

// instrument wraps op in a trace span and records its outcome.
func (s *Service) instrument(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, op)
	started := s.now()
	err := fn(ctx)
	s.metrics.Observe(ctx, op, err == nil, s.now().Sub(started))
	span.End(err)
	if err != nil {
		s.logger.Error(op+" failed", "error", err)
	}
	return err
}

// LogRide records a ride on the given line for the given car number. The car
// number must be ASCII digits only; the line must exist in the dataset. The rolling
// stock model is resolved at creation time and frozen into the record, as is
// the line color, so later dataset edits never rewrite history.
func (s *Service) LogRide(ctx context.Context, carNumber, lineID string) (domain.RideRecord, error) {
	var record domain.RideRecord
	err := s.instrument(ctx, "log_ride", func(ctx context.Context) error {
		trimmed := strings.TrimSpace(carNumber)
		if trimmed == "" {
			return fmt.Errorf("log ride: car number is empty")
		}
		for _, r := range trimmed {
			if r < '0' || r > '9' {
				return fmt.Errorf("log ride: car number %q is not numeric", carNumber)
			}
		}
		snap := s.dataset.Load(ctx)
		line, ok := findLine(snap.Lines, lineID)
		if !ok {
			return fmt.Errorf("log ride: unknown line %q", lineID)
		}
		record = domain.RideRecord{
			ID:          s.newID(),
			TrainNumber: trimmed,
			Line:        line.ID,
			LineColor:   line.Color,
			Model:       UnknownModel,
			Timestamp:   s.now().UTC().Format(time.RFC3339),
		}
		if match, ok := classifier.Classify(trimmed, snap.RollingStock); ok {
			record.Model = match.Model
			record.Division = string(match.Division)
		}
		s.ledger.Append(ctx, record)
		s.logger.Info("ride logged", "line", line.ID, "model", record.Model)
		return nil
	})
	if err != nil {
		return domain.RideRecord{}, err
	}
	return record, nil
}

func findLine(lines []domain.LineEntry, id string) (domain.LineEntry, bool) {
	for _, line := range lines {
		if line.ID == id {
			return line, true
		}
	}
	return domain.LineEntry{}, false
}

// DatasetSnapshot returns the current dataset, falling back to the seed when
// nothing usable is persisted.
func (s *Service) DatasetSnapshot(ctx context.Context) domain.Snapshot {
	var snap domain.Snapshot
	_ = s.instrument(ctx, "load_dataset", func(ctx context.Context) error {
		snap = s.dataset.Load(ctx)
		return nil
	})
	return snap
}

// SaveDataset persists an edited snapshot whole.
func (s *Service) SaveDataset(ctx context.Context, snap domain.Snapshot) {
	_ = s.instrument(ctx, "save_dataset", func(ctx context.Context) error {
		s.dataset.Save(ctx, snap)
		return nil
	})
}

// ReseedDataset restores and persists the hard-coded defaults.
func (s *Service) ReseedDataset(ctx context.Context) domain.Snapshot {
	var snap domain.Snapshot
	_ = s.instrument(ctx, "reseed_dataset", func(ctx context.Context) error {
		snap = s.dataset.Reseed(ctx)
		return nil
	})
	return snap
}

// Rides returns the ride history in insertion order.
func (s *Service) Rides(ctx context.Context) []domain.RideRecord {
	var rides []domain.RideRecord
	_ = s.instrument(ctx, "list_rides", func(ctx context.Context) error {
		rides = s.ledger.Load(ctx)
		return nil
	})
	return rides
}

// DeleteRide removes the ride with the given ID. It reports whether a ride
// was removed.
func (s *Service) DeleteRide(ctx context.Context, id string) bool {
	var removed bool
	_ = s.instrument(ctx, "delete_ride", func(ctx context.Context) error {
		removed = s.ledger.DeleteByID(ctx, id)
		return nil
	})
	return removed
}

// ClearRides removes the entire ride history.
func (s *Service) ClearRides(ctx context.Context) {
	_ = s.instrument(ctx, "clear_rides", func(ctx context.Context) error {
		s.ledger.Clear(ctx)
		return nil
	})
}

// ImportRides replaces the ride history with the parsed contents of data,
// which must be a JSON array of ride records. On any parse failure the
// existing history is left untouched. Returns the number of imported rides.
func (s *Service) ImportRides(ctx context.Context, data []byte) (int, error) {
	var count int
	err := s.instrument(ctx, "import_rides", func(ctx context.Context) error {
		rides, err := ledger.ParseImport(data)
		if err != nil {
			return fmt.Errorf("import rides: %w", err)
		}
		s.ledger.ReplaceAll(ctx, rides)
		count = len(rides)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ExportDocument renders the ride history as a pretty-printed JSON document
// together with its date-stamped download filename.
func (s *Service) ExportDocument(ctx context.Context) ([]byte, string, error) {
	var (
		doc  []byte
		name string
	)
	err := s.instrument(ctx, "export_document", func(ctx context.Context) error {
		rides := s.ledger.Load(ctx)
		var err error
		doc, err = ledger.ExportJSON(rides)
		if err != nil {
			return fmt.Errorf("export document: %w", err)
		}
		name = ledger.ExportFilename(s.now())
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return doc, name, nil
}

// ExportRides writes the export document to the configured blob store and
// returns the stored object's metadata.
func (s *Service) ExportRides(ctx context.Context) (blob.Info, error) {
	var info blob.Info
	err := s.instrument(ctx, "export_rides", func(ctx context.Context) error {
		if s.blobs == nil {
			return fmt.Errorf("export rides: no blob store configured")
		}
		doc, name, err := s.ExportDocument(ctx)
		if err != nil {
			return err
		}
		info, err = s.blobs.Put(ctx, name, bytes.NewReader(doc), blob.PutOptions{ContentType: "application/json"})
		if err != nil {
			return fmt.Errorf("export rides: %w", err)
		}
		return nil
	})
	if err != nil {
		return blob.Info{}, err
	}
	return info, nil
}
