package training

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultFlushInterval is how often the scheduled flush fires.
const DefaultFlushInterval = 6 * time.Hour

// RunFlushLoop flushes the ledger on a fixed interval until ctx is done.
// The flush is invoked unconditionally; the ledger itself reports when
// training is disabled. Errors are logged and the loop keeps running.
// Call from main or app lifecycle.
func RunFlushLoop(ctx context.Context, ledger *Ledger, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := ledger.Flush(ctx, TriggerScheduled)
			if err != nil {
				log.Error().Err(err).Msg("scheduled markov chain update failed")
				continue
			}
			if res.Disabled {
				log.Debug().Msg("scheduled markov chain update skipped: training disabled")
				continue
			}
			log.Info().Int("messages", res.Count).Msg("scheduled markov chain update complete")
		}
	}
}
