package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"markov-bot/internal/config"
)

// Setup points the global logger at the console and a rotating logfile, both
// taken from the config snapshot. Safe to call again after a reload changes
// the log target.
func Setup(snap *config.Snapshot) error {
	if dir := filepath.Dir(snap.LogfileName); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	file := &lumberjack.Logger{
		Filename:   snap.LogfileName,
		MaxSize:    1, // megabytes
		MaxBackups: 5,
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(io.MultiWriter(console, file)).
		With().
		Timestamp().
		Str("logger", snap.LoggerName).
		Logger()
	return nil
}
