package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"eventify/internal/pkg/logx"
)

// FileStore keeps the session in a JSON preferences file that maps slot names to string values.
// Other slots in the file are preserved. Every write replaces the file through a
// synced temporary file and a rename, so the file on disk is always complete.
type FileStore struct {
	mu   sync.RWMutex
	path string
	slot string
}

// NewFileStore returns a FileStore for slot in the file at path.
// The file and its directory are created on the first Save.
func NewFileStore(path, slot string) *FileStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &FileStore{path: path, slot: slot}
}

// Save implements Store.
func (f *FileStore) Save(_ context.Context, blob []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, _, err := f.read()
	if err != nil {
		return err
	}
	prefs[f.slot] = string(blob)
	return f.write(prefs)
}

// Load implements Store.
func (f *FileStore) Load(_ context.Context) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	prefs, _, err := f.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := prefs[f.slot]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Clear implements Store.
func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prefs, corrupt, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := prefs[f.slot]; !ok && !corrupt {
		return nil
	}
	delete(prefs, f.slot)
	return f.write(prefs)
}

// read returns the preferences map. A missing or empty file is an empty map.
// An unparseable file is also read as empty and reported as corrupt, so the next
// write replaces it instead of failing forever.
func (f *FileStore) read() (prefs map[string]string, corrupt bool, err error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read preferences %s: %w", f.path, err)
	}

	prefs = map[string]string{}
	if len(data) == 0 {
		return prefs, false, nil
	}
	if err := json.Unmarshal(data, &prefs); err != nil {
		logx.Warn("Unreadable preferences file, treating it as empty", "path", f.path, "error", err.Error())
		return map[string]string{}, true, nil
	}
	return prefs, false, nil
}

func (f *FileStore) write(prefs map[string]string) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp preferences: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preferences: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
