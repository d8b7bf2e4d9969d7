package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sharpc/internal/analyzer"
	"sharpc/internal/project"
)

// Current schema version - increment when a payload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит декодированные юниты и штампы проектов на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// UnitPayload is a decoded unit dump, stored so JSON dumps are parsed once.
type UnitPayload struct {
	Schema  uint16
	Path    string
	Content project.Digest
	Unit    *analyzer.Unit
}

// ProjectPayload records a successful project build. A matching hash with
// every output still on disk means the build is up to date.
type ProjectPayload struct {
	Schema uint16
	Name   string
	Hash   project.Digest
	Files  []string // absolute output paths
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(kind string, key project.Digest) string {
	// подкаталог на вид записи, для удобства очистки
	return filepath.Join(c.dir, kind, key.String()+".mp")
}

func (c *DiskCache) put(kind string, key project.Digest, payload any) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(kind, key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

func (c *DiskCache) get(kind string, key project.Digest, out any) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(kind, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return true, nil
}

// PutUnit stores a decoded unit under its content digest.
func (c *DiskCache) PutUnit(key project.Digest, path string, u *analyzer.Unit) error {
	return c.put("units", key, &UnitPayload{Schema: diskCacheSchemaVersion, Path: path, Content: key, Unit: u})
}

// GetUnit loads a decoded unit. Entries of another schema are misses.
func (c *DiskCache) GetUnit(key project.Digest) (*analyzer.Unit, bool, error) {
	var payload UnitPayload
	ok, err := c.get("units", key, &payload)
	if !ok || err != nil || payload.Schema != diskCacheSchemaVersion || payload.Content != key || payload.Unit == nil {
		return nil, false, err
	}
	return payload.Unit, true, nil
}

// PutProject records a successful build.
func (c *DiskCache) PutProject(payload *ProjectPayload) error {
	if payload == nil {
		return nil
	}
	payload.Schema = diskCacheSchemaVersion
	return c.put("projects", payload.Hash, payload)
}

// UpToDate reports whether a build with this hash already wrote every file
// it lists.
func (c *DiskCache) UpToDate(hash project.Digest) (*ProjectPayload, bool) {
	var payload ProjectPayload
	ok, err := c.get("projects", hash, &payload)
	if !ok || err != nil || payload.Schema != diskCacheSchemaVersion || payload.Hash != hash {
		return nil, false
	}
	for _, f := range payload.Files {
		if _, err := os.Stat(f); err != nil {
			return nil, false
		}
	}
	return &payload, true
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
