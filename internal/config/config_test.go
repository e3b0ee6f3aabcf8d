package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validConfig = `{
	"COOLDOWN": {
		"RATE": 3,
		"STANDARD": 60,
		"EXTENDED": 3600,
		"NO_COOLDOWN_SERVERS": ["100"],
		"NO_COOLDOWN_USERS": ["200", "201"]
	},
	"LOGFILE": {"LOG_NAME": "markov-bot", "LOG_LOCATION": "logs/markov-bot.log"},
	"DISCORD": {"DEVELOPMENT_SERVERS": ["300"]},
	"MARKOV": {"ENABLE_MARKOV_TRAINING": true}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot-config.json")
	writeFile(t, path, validConfig)

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if snap.CooldownRate != 3 {
		t.Errorf("CooldownRate = %d, want 3", snap.CooldownRate)
	}
	if snap.CooldownStandard != 60*time.Second {
		t.Errorf("CooldownStandard = %v, want 60s", snap.CooldownStandard)
	}
	if snap.CooldownExtended != time.Hour {
		t.Errorf("CooldownExtended = %v, want 1h", snap.CooldownExtended)
	}
	if !snap.UserExempt("200") || snap.UserExempt("999") {
		t.Error("user exemption list not honored")
	}
	if !snap.GuildExempt("100") || snap.GuildExempt("999") {
		t.Error("server exemption list not honored")
	}
	if snap.LoggerName != "markov-bot" {
		t.Errorf("LoggerName = %q", snap.LoggerName)
	}
	if !snap.TrainingEnabled {
		t.Error("TrainingEnabled should be true")
	}
	if !filepath.IsAbs(snap.ConfigFile) {
		t.Errorf("ConfigFile %q should be resolved to an absolute path", snap.ConfigFile)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{not json`},
		{"missing group", `{"COOLDOWN": {"RATE": 3, "STANDARD": 60, "EXTENDED": 1}}`},
		{"missing field", `{
			"COOLDOWN": {"STANDARD": 60, "EXTENDED": 1},
			"LOGFILE": {"LOG_NAME": "x", "LOG_LOCATION": "y"},
			"DISCORD": {},
			"MARKOV": {"ENABLE_MARKOV_TRAINING": false}
		}`},
		{"wrong type", `{
			"COOLDOWN": {"RATE": "three", "STANDARD": 60, "EXTENDED": 1},
			"LOGFILE": {"LOG_NAME": "x", "LOG_LOCATION": "y"},
			"DISCORD": {},
			"MARKOV": {"ENABLE_MARKOV_TRAINING": false}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bot-config.json")
			writeFile(t, path, tt.content)
			if _, err := Load(path); !errors.Is(err, ErrMalformed) {
				t.Fatalf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestReloadNoChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot-config.json")
	writeFile(t, path, validConfig)

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(snap)

	changed, err := store.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 0 {
		t.Fatalf("changed = %v, want empty", changed)
	}
}

func TestReloadReportsChangedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot-config.json")
	writeFile(t, path, validConfig)

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(snap)

	writeFile(t, path, `{
		"COOLDOWN": {
			"RATE": 5,
			"STANDARD": 60,
			"EXTENDED": 3600,
			"NO_COOLDOWN_SERVERS": ["100"],
			"NO_COOLDOWN_USERS": ["200", "201"]
		},
		"LOGFILE": {"LOG_NAME": "markov-bot", "LOG_LOCATION": "logs/markov-bot.log"},
		"DISCORD": {"DEVELOPMENT_SERVERS": ["300"]},
		"MARKOV": {"ENABLE_MARKOV_TRAINING": false}
	}`)

	changed, err := store.Reload()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"COOLDOWN_RATE", "ENABLE_MARKOV_TRAINING"}
	if len(changed) != len(want) || changed[0] != want[0] || changed[1] != want[1] {
		t.Fatalf("changed = %v, want %v", changed, want)
	}
	if store.Current().CooldownRate != 5 {
		t.Error("new snapshot not published")
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot-config.json")
	writeFile(t, path, validConfig)

	snap, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := NewStore(snap)

	writeFile(t, path, `{broken`)
	if _, err := store.Reload(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if store.Current() != snap {
		t.Error("prior snapshot should stay published after a failed reload")
	}
}
