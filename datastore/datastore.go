// Package datastore is a small JSON-file backed key/value store with atomic
// writes, rotating backups and periodic autosave.
package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds options for a DataStore.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
	BackupCount      int
}

// DefaultConfig returns the default options for filePath.
func DefaultConfig(filePath string) *Config {
	return &Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
		BackupCount:      3,
	}
}

// DataStore keeps all values in memory and mirrors them to disk.
type DataStore struct {
	mu     sync.RWMutex
	data   map[string]any
	dirty  bool
	config *Config
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New opens (or creates) a DataStore at filePath with default options.
func New(filePath string) (*DataStore, error) {
	return NewWithConfig(DefaultConfig(filePath))
}

// NewWithConfig opens (or creates) a DataStore with custom options.
func NewWithConfig(config *Config) (*DataStore, error) {
	if config == nil || config.FilePath == "" {
		return nil, fmt.Errorf("datastore: file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("datastore: create directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ds := &DataStore{
		data:   make(map[string]any),
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := ds.load(); err != nil {
		cancel()
		return nil, err
	}

	if config.AutoSaveInterval > 0 {
		ds.wg.Add(1)
		go ds.autoSave()
	}
	return ds, nil
}

// Add stores a key-value pair.
func (ds *DataStore) Add(key string, value any) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.data[key] = value
	ds.dirty = true
}

// Get retrieves a value by key.
func (ds *DataStore) Get(key string) (any, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	v, ok := ds.data[key]
	return v, ok
}

// Delete removes a key.
func (ds *DataStore) Delete(key string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.data, key)
	ds.dirty = true
}

// SaveToFile forces a write of the current data to disk.
func (ds *DataStore) SaveToFile() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.save()
}

// Close flushes pending data and stops the autosave loop.
func (ds *DataStore) Close() error {
	ds.cancel()
	ds.wg.Wait()
	return ds.SaveToFile()
}

func (ds *DataStore) load() error {
	raw, err := os.ReadFile(ds.config.FilePath)
	if os.IsNotExist(err) {
		return ds.save()
	}
	if err != nil {
		return fmt.Errorf("datastore: read %s: %w", ds.config.FilePath, err)
	}
	if err := json.Unmarshal(raw, &ds.data); err != nil {
		return fmt.Errorf("datastore: parse %s: %w", ds.config.FilePath, err)
	}
	return nil
}

// save writes the data atomically: marshal, write to a temp file, rotate
// backups, rename into place. Callers must hold ds.mu.
func (ds *DataStore) save() error {
	raw, err := json.MarshalIndent(ds.data, "", "  ")
	if err != nil {
		return fmt.Errorf("datastore: marshal: %w", err)
	}

	tmp := ds.config.FilePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("datastore: write temp file: %w", err)
	}

	ds.rotateBackups()

	if err := os.Rename(tmp, ds.config.FilePath); err != nil {
		return fmt.Errorf("datastore: replace %s: %w", ds.config.FilePath, err)
	}
	ds.dirty = false
	return nil
}

// rotateBackups shifts file.bak.N to file.bak.N+1 and copies the current file
// to file.bak.1. Missing files are not an error.
func (ds *DataStore) rotateBackups() {
	if ds.config.BackupCount <= 0 {
		return
	}
	for i := ds.config.BackupCount - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.bak.%d", ds.config.FilePath, i)
		to := fmt.Sprintf("%s.bak.%d", ds.config.FilePath, i+1)
		_ = os.Rename(from, to)
	}
	if raw, err := os.ReadFile(ds.config.FilePath); err == nil {
		_ = os.WriteFile(ds.config.FilePath+".bak.1", raw, 0o644)
	}
}

func (ds *DataStore) autoSave() {
	defer ds.wg.Done()
	ticker := time.NewTicker(ds.config.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ds.ctx.Done():
			return
		case <-ticker.C:
			ds.mu.Lock()
			if !ds.dirty {
				ds.mu.Unlock()
				continue
			}
			err := ds.save()
			ds.mu.Unlock()
			if err != nil {
				log.Error().Err(err).Str("file", ds.config.FilePath).Msg("datastore autosave failed")
			}
		}
	}
}
