package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"markov-bot/datastore"
	"markov-bot/internal/markov"
)

const (
	chainKey = "markov_chain"
	statsKey = "training_stats"
)

// Storage persists the Markov chain and training stats between restarts.
type Storage struct {
	ds *datastore.DataStore
}

// ChainRecord is the persisted model handle.
type ChainRecord struct {
	State     markov.State `json:"state"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TrainingStats accumulates across flushes.
type TrainingStats struct {
	MessagesLearned int       `json:"messages_learned"`
	LastUpdate      time.Time `json:"last_update"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// SaveChain stores the chain state as the current model handle.
func (s *Storage) SaveChain(st markov.State) error {
	s.ds.Add(chainKey, ChainRecord{State: st, UpdatedAt: time.Now().UTC()})
	return s.ds.SaveToFile()
}

// LoadChain returns the persisted chain state, if any.
func (s *Storage) LoadChain() (markov.State, bool, error) {
	data, exists := s.ds.Get(chainKey)
	if !exists {
		return markov.State{}, false, nil
	}

	var record ChainRecord
	if err := remarshal(data, &record); err != nil {
		return markov.State{}, false, fmt.Errorf("load chain: %w", err)
	}
	return record.State, true, nil
}

// RecordTraining updates the running stats after a successful merge.
func (s *Storage) RecordTraining(messages int) error {
	stats, err := s.Stats()
	if err != nil {
		return err
	}
	stats.MessagesLearned += messages
	stats.LastUpdate = time.Now().UTC()
	s.ds.Add(statsKey, stats)
	return nil
}

// Stats returns the accumulated training stats.
func (s *Storage) Stats() (TrainingStats, error) {
	data, exists := s.ds.Get(statsKey)
	if !exists {
		return TrainingStats{}, nil
	}
	var stats TrainingStats
	if err := remarshal(data, &stats); err != nil {
		return TrainingStats{}, fmt.Errorf("load training stats: %w", err)
	}
	return stats, nil
}

// remarshal converts the datastore's decoded form into a typed record.
func remarshal(data any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshalling data: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error unmarshalling record: %w", err)
	}
	return nil
}
