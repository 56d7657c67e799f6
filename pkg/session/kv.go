package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KV is the durable local store behind the session. Implementations need
// not be safe for concurrent use; all access happens on the UI goroutine.
type KV interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Dir is a KV backed by one file per key inside a directory,
// following the token-file layout under the user's home.
type Dir struct {
	path string
}

// NewDir returns a file-backed KV rooted at path.
// The directory is created lazily on first write.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

func (d *Dir) file(key string) string {
	return filepath.Join(d.path, key)
}

func (d *Dir) Get(key string) (string, bool) {
	data, err := os.ReadFile(d.file(key))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

func (d *Dir) Set(key, value string) error {
	if err := os.MkdirAll(d.path, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	if err := os.WriteFile(d.file(key), []byte(value), 0600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Delete(key string) error {
	err := os.Remove(d.file(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Memory is an in-memory KV for tests.
type Memory struct {
	m map[string]string
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (k *Memory) Get(key string) (string, bool) {
	v, ok := k.m[key]
	return v, ok
}

func (k *Memory) Set(key, value string) error {
	k.m[key] = value
	return nil
}

func (k *Memory) Delete(key string) error {
	delete(k.m, key)
	return nil
}
