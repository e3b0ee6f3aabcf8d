package config

import (
	"slices"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Store publishes the current Snapshot. Reads are a single atomic pointer
// load; a reload builds a new Snapshot and swaps it in, so readers never see
// a partially written one.
type Store struct {
	snap atomic.Pointer[Snapshot]
}

// NewStore creates a Store publishing snap.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.snap.Store(snap)
	return s
}

// Current returns the most recently published Snapshot. Never blocks.
func (s *Store) Current() *Snapshot {
	return s.snap.Load()
}

// Reload re-reads the snapshot's originating file. On success the new
// snapshot is published and the sorted names of changed keys are returned;
// on failure the prior snapshot stays published and the error is returned.
func (s *Store) Reload() ([]string, error) {
	old := s.Current()
	next, err := Load(old.ConfigFile)
	if err != nil {
		return nil, err
	}
	s.snap.Store(next)

	changes := diff(old, next)
	if len(changes) > 0 {
		log.Info().Str("file", next.ConfigFile).Msg("config updated")
		for _, c := range changes {
			log.Info().
				Str("key", c.key).
				Interface("old", c.old).
				Interface("new", c.new).
				Msg("config key changed")
		}
	}

	keys := make([]string, 0, len(changes))
	for _, c := range changes {
		keys = append(keys, c.key)
	}
	return keys, nil
}

type change struct {
	key      string
	old, new any
}

func diff(old, next *Snapshot) []change {
	var changes []change
	add := func(key string, o, n any, equal bool) {
		if !equal {
			changes = append(changes, change{key: key, old: o, new: n})
		}
	}

	add("COOLDOWN_RATE", old.CooldownRate, next.CooldownRate, old.CooldownRate == next.CooldownRate)
	add("COOLDOWN_STANDARD", old.CooldownStandard, next.CooldownStandard, old.CooldownStandard == next.CooldownStandard)
	add("COOLDOWN_EXTENDED", old.CooldownExtended, next.CooldownExtended, old.CooldownExtended == next.CooldownExtended)
	add("NO_COOLDOWN_USERS", old.NoCooldownUsers, next.NoCooldownUsers, slices.Equal(old.NoCooldownUsers, next.NoCooldownUsers))
	add("NO_COOLDOWN_SERVERS", old.NoCooldownServers, next.NoCooldownServers, slices.Equal(old.NoCooldownServers, next.NoCooldownServers))
	add("LOGGER_NAME", old.LoggerName, next.LoggerName, old.LoggerName == next.LoggerName)
	add("LOGFILE_NAME", old.LogfileName, next.LogfileName, old.LogfileName == next.LogfileName)
	add("DEVELOPMENT_SERVERS", old.DevelopmentServers, next.DevelopmentServers, slices.Equal(old.DevelopmentServers, next.DevelopmentServers))
	add("ENABLE_MARKOV_TRAINING", old.TrainingEnabled, next.TrainingEnabled, old.TrainingEnabled == next.TrainingEnabled)

	sort.Slice(changes, func(i, j int) bool { return changes[i].key < changes[j].key })
	return changes
}
