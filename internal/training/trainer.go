package training

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"markov-bot/internal/markov"
	"markov-bot/internal/storage"
)

// ChainTrainer merges flushed batches into the in-memory chain and persists
// the updated model handle.
type ChainTrainer struct {
	Chain *markov.Chain
	Store *storage.Storage
}

func (t *ChainTrainer) Train(ctx context.Context, contents []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absorbed := t.Chain.Train(contents)
	if err := t.Store.SaveChain(t.Chain.State()); err != nil {
		return fmt.Errorf("save chain: %w", err)
	}
	if err := t.Store.RecordTraining(absorbed); err != nil {
		log.Warn().Err(err).Msg("failed to update training stats")
	}

	stats, _ := t.Store.Stats()
	log.Info().
		Int("absorbed", absorbed).
		Int("skipped", len(contents)-absorbed).
		Int("total_learned", stats.MessagesLearned).
		Msg("markov chain updated")
	return nil
}
