package training

import (
	"context"
	"fmt"
	"sync"

	"markov-bot/internal/config"
)

// Trigger names the source of a flush.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// Trainer merges a batch of message contents into the external model.
type Trainer interface {
	Train(ctx context.Context, contents []string) error
}

// FlushResult reports what one flush did.
type FlushResult struct {
	Trigger  Trigger
	Count    int
	Disabled bool
}

// Ledger accumulates live message content awaiting incorporation into the
// model, keyed by message ID. Record and Remove respect the training-enabled
// config flag at call time; Flush drains everything in one exclusive
// snapshot-and-clear, so two overlapping flushes can never submit the same
// message twice.
type Ledger struct {
	cfg     *config.Store
	trainer Trainer

	mu      sync.Mutex
	entries map[string]string
}

// NewLedger creates a Ledger feeding trainer.
func NewLedger(cfg *config.Store, trainer Trainer) *Ledger {
	return &Ledger{
		cfg:     cfg,
		trainer: trainer,
		entries: make(map[string]string),
	}
}

func (l *Ledger) enabled() bool {
	return l.cfg.Current().TrainingEnabled
}

// Record remembers content under messageID. Messages from automated authors
// are never recorded, and nothing is recorded while training is disabled.
func (l *Ledger) Record(messageID, content string, isAutomatedAuthor bool) {
	if isAutomatedAuthor || !l.enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[messageID] = content
}

// Remove drops messageID from the ledger. Removing an unknown ID is a no-op;
// the message may never have been recorded, or was already flushed.
func (l *Ledger) Remove(messageID string) {
	if !l.enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, messageID)
}

// Len returns the number of pending messages.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Flush drains the ledger and hands the batch to the trainer. The ledger is
// cleared before the merge call, so a failed merge drops the batch rather
// than risking a double submit on retry. The lock covers only the
// snapshot-and-clear, never the merge itself.
func (l *Ledger) Flush(ctx context.Context, trigger Trigger) (FlushResult, error) {
	if !l.enabled() {
		return FlushResult{Trigger: trigger, Disabled: true}, nil
	}

	l.mu.Lock()
	batch := make([]string, 0, len(l.entries))
	for _, content := range l.entries {
		batch = append(batch, content)
	}
	l.entries = make(map[string]string)
	l.mu.Unlock()

	if len(batch) == 0 {
		return FlushResult{Trigger: trigger}, nil
	}

	if err := l.trainer.Train(ctx, batch); err != nil {
		return FlushResult{Trigger: trigger}, fmt.Errorf("flush (%s): merge of %d messages failed: %w", trigger, len(batch), err)
	}
	return FlushResult{Trigger: trigger, Count: len(batch)}, nil
}
