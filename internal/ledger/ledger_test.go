package ledger

import (
	"context"
	"errors"
	"testing"

	"subwaylog/internal/infra/kv/memory"
	"subwaylog/pkg/domain"
)

func ride(id, car string) domain.RideRecord {
	return domain.RideRecord{
		ID:          id,
		TrainNumber: car,
		Line:        "4",
		LineColor:   "#00933C",
		Model:       "R62",
		Division:    "A",
		Timestamp:   "2026-08-26T12:00:00Z",
	}
}

func TestLoadEmptyStoreReturnsEmptySequence(t *testing.T) {
	l := New(memory.NewStore())
	rides := l.Load(context.Background())
	if rides == nil || len(rides) != 0 {
		t.Fatalf("expected empty non-nil sequence, got %#v", rides)
	}
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewStore())

	l.Append(ctx, ride("r1", "1301"))
	l.Append(ctx, ride("r2", "4210"))
	l.Append(ctx, ride("r3", "5482"))

	rides := l.Load(ctx)
	if len(rides) != 3 {
		t.Fatalf("expected 3 rides, got %d", len(rides))
	}
	for i, want := range []string{"r1", "r2", "r3"} {
		if rides[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, rides[i].ID)
		}
	}
}

func TestDeleteByIDLeavesRemainderInOrder(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewStore())
	l.Append(ctx, ride("r1", "1301"))
	l.Append(ctx, ride("r2", "4210"))
	l.Append(ctx, ride("r3", "5482"))

	if removed := l.DeleteByID(ctx, "r2"); !removed {
		t.Fatalf("expected r2 to be removed")
	}
	rides := l.Load(ctx)
	if len(rides) != 2 || rides[0].ID != "r1" || rides[1].ID != "r3" {
		t.Fatalf("unexpected remainder: %+v", rides)
	}
}

func TestDeleteByIDUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewStore())
	l.Append(ctx, ride("r1", "1301"))

	if removed := l.DeleteByID(ctx, "missing"); removed {
		t.Fatalf("expected no removal for unknown id")
	}
	if rides := l.Load(ctx); len(rides) != 1 {
		t.Fatalf("ledger was altered: %+v", rides)
	}
}

func TestClearEmptiesTheLedger(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewStore())
	l.Append(ctx, ride("r1", "1301"))
	l.Clear(ctx)
	if rides := l.Load(ctx); len(rides) != 0 {
		t.Fatalf("expected empty ledger, got %+v", rides)
	}
}

func TestReplaceAllOverwritesWholeSequence(t *testing.T) {
	ctx := context.Background()
	l := New(memory.NewStore())
	l.Append(ctx, ride("old", "1301"))

	l.ReplaceAll(ctx, []domain.RideRecord{ride("new1", "4210"), ride("new2", "5482")})
	rides := l.Load(ctx)
	if len(rides) != 2 || rides[0].ID != "new1" {
		t.Fatalf("unexpected sequence: %+v", rides)
	}
}

func TestLoadGarbagePayloadYieldsEmptySequence(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	if err := kv.Set(ctx, CookieName, []byte("%ZZ-not-encoded")); err != nil {
		t.Fatalf("seed garbage: %v", err)
	}
	l := New(kv)
	if rides := l.Load(ctx); len(rides) != 0 {
		t.Fatalf("expected empty sequence for garbage payload, got %+v", rides)
	}
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Set(context.Context, string, []byte) error         { return f.err }
func (f failingKV) Delete(context.Context, string) error              { return f.err }

func TestStorageFailuresNeverSurface(t *testing.T) {
	ctx := context.Background()
	l := New(failingKV{err: errors.New("backend down")})

	if rides := l.Load(ctx); len(rides) != 0 {
		t.Fatalf("expected empty sequence when the store errors")
	}
	l.Append(ctx, ride("r1", "1301"))
	l.Clear(ctx)
}
