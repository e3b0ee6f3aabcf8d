package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultPath is tried when $BOT_CONFIG is unset or does not exist.
const DefaultPath = "bot-config.json"

// MaxChars caps the length of generated replies.
const MaxChars = 1800

var (
	ErrNotFound  = errors.New("config file not found")
	ErrMalformed = errors.New("config file malformed")
)

// Snapshot is one immutable set of configuration values. A reload never
// mutates a published Snapshot; it builds a new one and swaps it in.
type Snapshot struct {
	ConfigFile         string
	CooldownRate       int
	CooldownStandard   time.Duration
	CooldownExtended   time.Duration
	NoCooldownUsers    []string
	NoCooldownServers  []string
	LoggerName         string
	LogfileName        string
	DevelopmentServers []string
	TrainingEnabled    bool
}

// UserExempt reports whether userID bypasses the cooldown gate.
func (s *Snapshot) UserExempt(userID string) bool {
	return contains(s.NoCooldownUsers, userID)
}

// GuildExempt reports whether guildID bypasses the cooldown gate.
func (s *Snapshot) GuildExempt(guildID string) bool {
	return contains(s.NoCooldownServers, guildID)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// fileConfig mirrors the on-disk JSON layout. Required fields are pointers
// so a missing key can be told apart from a zero value.
type fileConfig struct {
	Cooldown *struct {
		Rate              *int     `json:"RATE"`
		Standard          *int     `json:"STANDARD"`
		Extended          *int     `json:"EXTENDED"`
		NoCooldownServers []string `json:"NO_COOLDOWN_SERVERS"`
		NoCooldownUsers   []string `json:"NO_COOLDOWN_USERS"`
	} `json:"COOLDOWN"`
	Logfile *struct {
		LogName     *string `json:"LOG_NAME"`
		LogLocation *string `json:"LOG_LOCATION"`
	} `json:"LOGFILE"`
	Discord *struct {
		DevelopmentServers []string `json:"DEVELOPMENT_SERVERS"`
	} `json:"DISCORD"`
	Markov *struct {
		EnableTraining *bool `json:"ENABLE_MARKOV_TRAINING"`
	} `json:"MARKOV"`
}

// Load reads and validates the config file at path, falling back to
// DefaultPath when path is empty or absent. Returns ErrNotFound when neither
// path exists and ErrMalformed when required fields are missing or ill-typed.
func Load(path string) (*Snapshot, error) {
	raw, used, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, used, err)
	}
	if err := fc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, used, err)
	}

	resolved, err := filepath.Abs(used)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", used, err)
	}

	return &Snapshot{
		ConfigFile:         resolved,
		CooldownRate:       *fc.Cooldown.Rate,
		CooldownStandard:   time.Duration(*fc.Cooldown.Standard) * time.Second,
		CooldownExtended:   time.Duration(*fc.Cooldown.Extended) * time.Second,
		NoCooldownUsers:    fc.Cooldown.NoCooldownUsers,
		NoCooldownServers:  fc.Cooldown.NoCooldownServers,
		LoggerName:         *fc.Logfile.LogName,
		LogfileName:        *fc.Logfile.LogLocation,
		DevelopmentServers: fc.Discord.DevelopmentServers,
		TrainingEnabled:    *fc.Markov.EnableTraining,
	}, nil
}

func readFile(path string) (data []byte, used string, err error) {
	tried := []string{}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			return raw, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("read config %s: %w", path, err)
		}
		tried = append(tried, path)
	}

	raw, err := os.ReadFile(DefaultPath)
	if err == nil {
		return raw, DefaultPath, nil
	}
	if !os.IsNotExist(err) {
		return nil, "", fmt.Errorf("read config %s: %w", DefaultPath, err)
	}
	tried = append(tried, DefaultPath)

	return nil, "", fmt.Errorf("%w: tried %v", ErrNotFound, tried)
}

func (fc *fileConfig) validate() error {
	if fc.Cooldown == nil {
		return errors.New("missing COOLDOWN group")
	}
	if fc.Cooldown.Rate == nil {
		return errors.New("missing COOLDOWN.RATE")
	}
	if fc.Cooldown.Standard == nil {
		return errors.New("missing COOLDOWN.STANDARD")
	}
	if fc.Cooldown.Extended == nil {
		return errors.New("missing COOLDOWN.EXTENDED")
	}
	if fc.Logfile == nil {
		return errors.New("missing LOGFILE group")
	}
	if fc.Logfile.LogName == nil {
		return errors.New("missing LOGFILE.LOG_NAME")
	}
	if fc.Logfile.LogLocation == nil {
		return errors.New("missing LOGFILE.LOG_LOCATION")
	}
	if fc.Discord == nil {
		return errors.New("missing DISCORD group")
	}
	if fc.Markov == nil {
		return errors.New("missing MARKOV group")
	}
	if fc.Markov.EnableTraining == nil {
		return errors.New("missing MARKOV.ENABLE_MARKOV_TRAINING")
	}
	return nil
}
