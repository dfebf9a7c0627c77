package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSetGetDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "subwaylog.dataset", []byte(`{"lines":[]}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.Get(ctx, "subwaylog.dataset")
	if err != nil || !ok || string(got) != `{"lines":[]}` {
		t.Fatalf("get: %q ok=%v err=%v", got, ok, err)
	}

	if err := s.Set(ctx, "subwaylog.dataset", []byte("[]")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = s.Get(ctx, "subwaylog.dataset")
	if string(got) != "[]" {
		t.Fatalf("expected overwrite, got %q", got)
	}

	if err := s.Delete(ctx, "subwaylog.dataset"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "subwaylog.dataset"); ok {
		t.Fatalf("expected key to be gone")
	}
	if err := s.Delete(ctx, "subwaylog.dataset"); err != nil {
		t.Fatalf("deleting a missing key should be a no-op: %v", err)
	}
}

func TestNestedKeysCreateDirectories(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := s.Set(ctx, "nested/deep/key", []byte("v")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "nested", "deep", "key")); err != nil {
		t.Fatalf("expected backing file: %v", err)
	}
}

func TestInvalidKeysAreRejected(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "  ", "../escape", "a/../../b", "/absolute"} {
		if err := s.Set(ctx, key, []byte("v")); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
		if _, _, err := s.Get(ctx, key); err == nil {
			t.Fatalf("expected get of key %q to be rejected", key)
		}
	}
}

func TestDefaultRoot(t *testing.T) {
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
	s, err := NewStore("")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if s.Root() != "./subwaylogdata" {
		t.Fatalf("unexpected default root %q", s.Root())
	}
}
