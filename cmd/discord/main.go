package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"markov-bot/internal/bot"
	"markov-bot/internal/command"
	"markov-bot/internal/config"
	"markov-bot/internal/cooldown"
	"markov-bot/internal/discord"
	"markov-bot/internal/logging"
	"markov-bot/internal/markov"
	"markov-bot/internal/storage"
	"markov-bot/internal/training"
	v "markov-bot/internal/version"
)

func main() {
	envCfg, err := config.LoadEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment")
	}

	snap, err := config.Load(envCfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file")
	}
	if err := logging.Setup(snap); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	log.Info().Str("app", v.AppName).Str("version", v.Version).Str("config", snap.ConfigFile).Msg("starting bot")

	cfg := config.NewStore(snap)

	store, err := storage.New(envCfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	chain := markov.New()
	if st, found, err := store.LoadChain(); err != nil {
		log.Warn().Err(err).Msg("could not load persisted chain, starting empty")
	} else if found {
		chain = markov.FromState(st)
		log.Info().Int("trained", chain.Trained()).Msg("loaded persisted markov chain")
	}

	ledger := training.NewLedger(cfg, &training.ChainTrainer{Chain: chain, Store: store})
	gate := cooldown.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := config.Watch(ctx, cfg); err != nil {
			log.Error().Err(err).Msg("config watcher stopped")
		}
	}()
	go training.RunFlushLoop(ctx, ledger, training.DefaultFlushInterval)

	deps := &command.Deps{
		Config:  cfg,
		Gate:    gate,
		Ledger:  ledger,
		Chain:   chain,
		Storage: store,
		Replies: bot.NewReplyTracker(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, envCfg.Token(), deps); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("received signal, shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
		}
		cancel()
	}

	// Submit whatever the ledger still holds before exiting.
	if res, err := ledger.Flush(context.Background(), training.TriggerManual); err != nil {
		log.Error().Err(err).Msg("final flush failed")
	} else if !res.Disabled && res.Count > 0 {
		log.Info().Int("messages", res.Count).Msg("final flush complete")
	}

	log.Info().Msg("Discord bot exited cleanly")
}
