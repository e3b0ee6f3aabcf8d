package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"markov-bot/internal/command"
)

// Bot is the Discord front end: it feeds message events into the cooldown
// gate and the training ledger, and dispatches slash commands.
type Bot struct {
	dg   *discordgo.Session
	deps *command.Deps

	// Discord allows bursts of command registrations but sustained calls
	// need pacing.
	registerLimiter *rate.Limiter
}

// StartBot runs the Discord bot until ctx is done.
func StartBot(ctx context.Context, token string, deps *command.Deps) error {
	b := &Bot{
		deps:            deps,
		registerLimiter: rate.NewLimiter(rate.Every(time.Second/20), 5),
	}
	if err := b.run(ctx, token); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onMessageDelete)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, closing Discord session")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
}

// registerCommands registers all slash commands for one guild.
func (b *Bot) registerCommands(ctx context.Context, guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	for _, cmd := range command.All() {
		slash, ok := cmd.(command.SlashProvider)
		if !ok {
			continue
		}
		def := slash.SlashDefinition()
		if def == nil {
			continue
		}
		if err := b.registerLimiter.Wait(ctx); err != nil {
			return err
		}
		if _, err := b.dg.ApplicationCommandCreate(appID, guildID, def); err != nil {
			log.Error().Err(err).Str("guild", guildID).Str("command", def.Name).Msg("can't create command")
		}
	}
	return nil
}
