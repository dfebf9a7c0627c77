package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"subwaylog/internal/blob"
	"subwaylog/internal/infra/kv/memory"
	"subwaylog/pkg/domain"
)

var testClock = time.Date(2026, time.August, 26, 15, 4, 5, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	var seq int
	base := []Option{
		WithClock(func() time.Time { return testClock }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("ride-%d", seq)
		}),
	}
	return New(memory.NewStore(), append(base, opts...)...)
}

func TestLogRideClassifiesAndFreezesFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	record, err := svc.LogRide(ctx, "4210", "A")
	if err != nil {
		t.Fatalf("log ride: %v", err)
	}
	if record.Model != "R211A" || record.Division != "B" {
		t.Fatalf("unexpected classification: %+v", record)
	}
	if record.ID != "ride-1" || record.TrainNumber != "4210" {
		t.Fatalf("unexpected identity fields: %+v", record)
	}
	if record.Line != "A" || record.LineColor == "" {
		t.Fatalf("line fields not denormalized: %+v", record)
	}
	if record.Timestamp != "2026-08-26T15:04:05Z" {
		t.Fatalf("unexpected timestamp %q", record.Timestamp)
	}

	rides := svc.Rides(ctx)
	if len(rides) != 1 || rides[0] != record {
		t.Fatalf("ledger does not hold the returned record: %+v", rides)
	}
}

func TestLogRideUnknownCarNumber(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	record, err := svc.LogRide(ctx, "9999", "4")
	if err != nil {
		t.Fatalf("log ride: %v", err)
	}
	if record.Model != UnknownModel {
		t.Fatalf("expected %s, got %s", UnknownModel, record.Model)
	}
	if record.Division != "" {
		t.Fatalf("expected empty division for unknown model, got %s", record.Division)
	}
}

func TestLogRideRejectsNonNumericCarNumber(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	for _, input := range []string{"", "   ", "12a4", "R211", "-42", "٤٢١٠", "４２１０"} {
		if _, err := svc.LogRide(ctx, input, "4"); err == nil {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
	if rides := svc.Rides(ctx); len(rides) != 0 {
		t.Fatalf("rejected inputs must not reach the ledger: %+v", rides)
	}
}

func TestLogRideRejectsUnknownLine(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.LogRide(context.Background(), "4210", "Z"); err == nil {
		t.Fatalf("expected unknown line error")
	}
}

func TestDeleteAndClearRides(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	first, _ := svc.LogRide(ctx, "1301", "4")
	second, _ := svc.LogRide(ctx, "4210", "A")

	if removed := svc.DeleteRide(ctx, first.ID); !removed {
		t.Fatalf("expected removal of %s", first.ID)
	}
	rides := svc.Rides(ctx)
	if len(rides) != 1 || rides[0].ID != second.ID {
		t.Fatalf("unexpected remainder: %+v", rides)
	}
	if removed := svc.DeleteRide(ctx, "missing"); removed {
		t.Fatalf("expected no removal for unknown id")
	}

	svc.ClearRides(ctx)
	if rides := svc.Rides(ctx); len(rides) != 0 {
		t.Fatalf("expected empty ledger after clear: %+v", rides)
	}
}

func TestImportRidesReplacesHistory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.LogRide(ctx, "1301", "4")

	doc := `[{"id":"imp-1","trainNumber":"5482","line":"N","model":"R46"},{"id":"imp-2","trainNumber":"8400","line":"L","model":"R160A"}]`
	count, err := svc.ImportRides(ctx, []byte(doc))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported rides, got %d", count)
	}
	rides := svc.Rides(ctx)
	if len(rides) != 2 || rides[0].ID != "imp-1" || rides[1].ID != "imp-2" {
		t.Fatalf("unexpected ledger after import: %+v", rides)
	}
}

func TestImportRidesRejectsNonArrayAndKeepsLedger(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	existing, _ := svc.LogRide(ctx, "1301", "4")

	for _, doc := range []string{`{"id":"x"}`, `"rides"`, `not json`, ``} {
		if _, err := svc.ImportRides(ctx, []byte(doc)); err == nil {
			t.Fatalf("expected %q to be rejected", doc)
		}
	}
	rides := svc.Rides(ctx)
	if len(rides) != 1 || rides[0].ID != existing.ID {
		t.Fatalf("failed import altered the ledger: %+v", rides)
	}
}

func TestExportDocument(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.LogRide(ctx, "4210", "A")

	doc, name, err := svc.ExportDocument(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "nyc-rides-2026-08-26.json" {
		t.Fatalf("unexpected filename %s", name)
	}
	if !strings.Contains(string(doc), "\n  ") {
		t.Fatalf("expected pretty-printed output: %s", doc)
	}
	var rides []domain.RideRecord
	if err := json.Unmarshal(doc, &rides); err != nil {
		t.Fatalf("exported document does not parse: %v", err)
	}
	if len(rides) != 1 || rides[0].TrainNumber != "4210" {
		t.Fatalf("unexpected content: %+v", rides)
	}
}

func TestExportRidesWritesToBlobStore(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemoryStore()
	svc := newTestService(t, WithBlobStore(blobs))
	_, _ = svc.LogRide(ctx, "4210", "A")

	info, err := svc.ExportRides(ctx)
	if err != nil {
		t.Fatalf("export rides: %v", err)
	}
	if info.Key != "nyc-rides-2026-08-26.json" {
		t.Fatalf("unexpected blob key %s", info.Key)
	}
	if info.ContentType != "application/json" {
		t.Fatalf("unexpected content type %s", info.ContentType)
	}

	stored, rc, err := blobs.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("get blob: %v", err)
	}
	_ = rc.Close()
	if stored.Size != info.Size {
		t.Fatalf("blob size mismatch: %+v vs %+v", stored, info)
	}
}

func TestExportRidesWithoutBlobStore(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.ExportRides(context.Background()); err == nil {
		t.Fatalf("expected error when no blob store is configured")
	}
}

func TestImportRoundTripsThroughExport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _ = svc.LogRide(ctx, "1301", "4")
	_, _ = svc.LogRide(ctx, "4210", "A")

	doc, _, err := svc.ExportDocument(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	svc.ClearRides(ctx)

	count, err := svc.ImportRides(ctx, doc)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rides back, got %d", count)
	}
	rides := svc.Rides(ctx)
	if rides[0].TrainNumber != "1301" || rides[1].TrainNumber != "4210" {
		t.Fatalf("round trip lost order: %+v", rides)
	}
}
