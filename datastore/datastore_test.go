package datastore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddGetDelete(t *testing.T) {
	ds, err := New(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()

	ds.Add("key", "value")
	v, ok := ds.Get("key")
	if !ok || v != "value" {
		t.Fatalf("Get = (%v, %v), want (value, true)", v, ok)
	}

	ds.Delete("key")
	if _, ok := ds.Get("key"); ok {
		t.Fatal("key should be gone after Delete")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	ds, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	ds.Add("greeting", "hello")
	if err := ds.Close(); err != nil {
		t.Fatal(err)
	}

	ds2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ds2.Close()

	v, ok := ds2.Get("greeting")
	if !ok || v != "hello" {
		t.Fatalf("Get after reopen = (%v, %v), want (hello, true)", v, ok)
	}
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	ds, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()

	ds.Add("a", 1)
	if err := ds.SaveToFile(); err != nil {
		t.Fatal(err)
	}
	ds.Add("b", 2)
	if err := ds.SaveToFile(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".bak.1"); err != nil {
		t.Fatalf("expected first backup to exist: %v", err)
	}
}
