package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"markov-bot/internal/bot"
	"markov-bot/internal/command"
	"markov-bot/internal/config"
	"markov-bot/internal/markov"
)

const generateAttempts = 10

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if err := b.registerCommands(context.Background(), g.ID); err != nil {
			log.Error().Err(err).Str("guild", g.ID).Msg("error registering slash commands")
		}
	}
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Discord bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("bot added to guild")
	if err := b.registerCommands(context.Background(), g.Guild.ID); err != nil {
		log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to register commands for new guild")
	}
}

// onMessageCreate offers every observed message to the training ledger and
// answers trigger messages with a generated sentence, subject to the
// per-user cooldown gate.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	b.deps.Ledger.Record(m.ID, m.ContentWithMentionsReplaced(), m.Author.Bot)

	seed, ok := triggerSeed(m.Content)
	if !ok {
		return
	}

	snap := b.deps.Config.Current()
	if snap.UserExempt(m.Author.ID) || snap.GuildExempt(m.GuildID) {
		b.deps.Gate.RecordInteraction(m.Author.ID)
	} else if !b.deps.Gate.Allow(m.Author.ID) {
		return
	}

	text, err := b.deps.Chain.Generate(seed, generateAttempts)
	if err != nil {
		if !errors.Is(err, markov.ErrNoSentence) {
			log.Error().Err(err).Str("seed", seed).Msg("sentence generation failed")
		}
		return
	}
	if len(text) > config.MaxChars {
		text = text[:config.MaxChars]
	}

	sent, err := bot.SendMessage(context.Background(), s, m.ChannelID, text)
	if err != nil {
		log.Error().Err(err).Str("channel", m.ChannelID).Msg("failed to send reply")
		return
	}
	b.deps.Replies.Add(sent.ChannelID, sent.ID)
}

// onMessageDelete compensates the ledger for deleted messages. Only the ID
// is needed; when the gateway payload carries no cached copy the removal is
// still valid, the message may simply never have been recorded.
func (b *Bot) onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.BeforeDelete == nil {
		log.Debug().Str("message", m.ID).Msg("deleted message was not cached")
	}
	b.deps.Ledger.Remove(m.ID)
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	cmd, ok := command.Get(name)
	if !ok {
		log.Warn().Str("command", name).Msg("unknown command")
		return
	}

	err := cmd.Run(&command.SlashContext{Session: s, Event: i, Deps: b.deps})
	if err != nil {
		log.Error().Err(err).Str("command", name).Msg("error running slash command")
		_ = bot.RespondEphemeral(s, i, "Something went wrong running that command.")
	}
}

// triggerSeed reports whether content is a trigger message: a single word
// starting with exactly one "?", e.g. "?hello". Returns the seed word.
func triggerSeed(content string) (string, bool) {
	if !strings.HasPrefix(content, "?") {
		return "", false
	}
	if len(strings.Fields(content)) != 1 {
		return "", false
	}
	if strings.Count(content, "?") != 1 {
		return "", false
	}
	if len(content) == 1 {
		return "", false
	}
	return strings.TrimSpace(content)[1:], true
}
