package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatchReloadsOnModify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot-config.json")
	writeFile(t, path, validConfig)

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(snap)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, store) }()

	// Give the watcher a moment to arm before modifying the file.
	time.Sleep(100 * time.Millisecond)

	// An unrelated file in the same directory must not trigger a reload.
	writeFile(t, filepath.Join(dir, "other.json"), `{"unrelated": true}`)

	writeFile(t, path, strings.Replace(validConfig, `"RATE": 3`, `"RATE": 7`, 1))

	deadline := time.After(3 * time.Second)
	for store.Current().CooldownRate != 7 {
		select {
		case <-deadline:
			t.Fatal("watcher did not publish the new snapshot in time")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop after context cancellation")
	}
}

func TestWatchSurvivesBrokenReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot-config.json")
	writeFile(t, path, validConfig)

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(snap)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, store) }()
	time.Sleep(100 * time.Millisecond)

	// Break the file; the watcher must keep the old snapshot and keep going.
	writeFile(t, path, `{broken`)
	time.Sleep(200 * time.Millisecond)
	if store.Current().CooldownRate != 3 {
		t.Fatal("broken reload must not replace the published snapshot")
	}

	// A later valid rewrite is still picked up.
	writeFile(t, path, strings.Replace(validConfig, `"RATE": 3`, `"RATE": 9`, 1))
	deadline := time.After(3 * time.Second)
	for store.Current().CooldownRate != 9 {
		select {
		case <-deadline:
			t.Fatal("watcher stopped reloading after a failed attempt")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
