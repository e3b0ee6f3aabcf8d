package storage

import (
	"path/filepath"
	"testing"

	"markov-bot/internal/markov"
)

func TestChainRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}

	chain := markov.New()
	chain.Train([]string{"hello world", "goodbye world"})
	if err := s.SaveChain(chain.State()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen from disk.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	st, found, err := s2.LoadChain()
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected persisted chain to be found")
	}
	if markov.FromState(st).Trained() != 2 {
		t.Fatalf("Trained = %d, want 2", markov.FromState(st).Trained())
	}
}

func TestLoadChainMissing(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	_, found, err := s.LoadChain()
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("empty store should report no chain")
	}
}

func TestTrainingStatsAccumulate(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.RecordTraining(10); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordTraining(5); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.MessagesLearned != 15 {
		t.Fatalf("MessagesLearned = %d, want 15", stats.MessagesLearned)
	}
	if stats.LastUpdate.IsZero() {
		t.Fatal("LastUpdate should be set")
	}
}
