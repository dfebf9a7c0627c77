package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const metaSuffix = ".meta"

// FilesystemStore persists export documents as files under a root directory.
// Metadata is kept in a JSON sidecar next to each payload.
type FilesystemStore struct {
	root string
	now  func() time.Time
}

var _ Store = (*FilesystemStore)(nil)

// NewFilesystemStore creates the root directory if needed and returns a store
// rooted there.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("blob: filesystem root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("blob: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create root: %w", err)
	}
	return &FilesystemStore{root: abs, now: time.Now}, nil
}

// Root returns the absolute root directory of the store.
func (s *FilesystemStore) Root() string { return s.root }

func (s *FilesystemStore) path(key string) (string, error) {
	clean, err := sanitizeBlobKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

// sanitizeBlobKey rejects keys that would escape the root directory.
func sanitizeBlobKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("blob: empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", fmt.Errorf("blob: invalid key %q", key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("blob: invalid key %q", key)
	}
	return clean, nil
}

func (s *FilesystemStore) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	path, err := s.path(key)
	if err != nil {
		return Info{}, err
	}
	if _, err := os.Stat(path); err == nil {
		return Info{}, fmt.Errorf("%w: %s", ErrExists, key)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Info{}, fmt.Errorf("blob: stat %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, fmt.Errorf("blob: create directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return Info{}, fmt.Errorf("blob: create temp file: %w", err)
	}
	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Info{}, fmt.Errorf("blob: write payload: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return Info{}, fmt.Errorf("blob: sync payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return Info{}, fmt.Errorf("blob: close payload: %w", err)
	}
	info := Info{
		Key:         key,
		Size:        size,
		ContentType: opts.ContentType,
		CreatedAt:   s.now().UTC(),
	}
	meta, err := json.Marshal(info)
	if err != nil {
		os.Remove(tmp.Name())
		return Info{}, fmt.Errorf("blob: encode metadata: %w", err)
	}
	if err := os.WriteFile(path+metaSuffix, meta, 0o644); err != nil {
		os.Remove(tmp.Name())
		return Info{}, fmt.Errorf("blob: write metadata: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		os.Remove(path + metaSuffix)
		return Info{}, fmt.Errorf("blob: commit payload: %w", err)
	}
	return info, nil
}

func (s *FilesystemStore) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, nil, err
	}
	path, err := s.path(key)
	if err != nil {
		return Info{}, nil, err
	}
	info, err := s.readMeta(path, key)
	if err != nil {
		return Info{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, fmt.Errorf("blob: open %s: %w", key, err)
	}
	return info, f, nil
}

func (s *FilesystemStore) readMeta(path, key string) (Info, error) {
	raw, err := os.ReadFile(path + metaSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return Info{}, fmt.Errorf("blob: key not found: %s", key)
	}
	if err != nil {
		return Info{}, fmt.Errorf("blob: read metadata: %w", err)
	}
	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return Info{}, fmt.Errorf("blob: decode metadata: %w", err)
	}
	return info, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("blob: remove %s: %w", key, err)
	}
	if err := os.Remove(path + metaSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("blob: remove metadata: %w", err)
	}
	return true, nil
}

func (s *FilesystemStore) List(ctx context.Context, prefix string) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var infos []Info
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, strings.TrimSuffix(path, metaSuffix))
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := s.readMeta(strings.TrimSuffix(path, metaSuffix), key)
		if err != nil {
			return err
		}
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("blob: list: %w", err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (s *FilesystemStore) Driver() Driver { return DriverFilesystem }
