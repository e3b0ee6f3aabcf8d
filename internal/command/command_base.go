package command

import (
	"github.com/bwmarrin/discordgo"

	"markov-bot/internal/bot"
	"markov-bot/internal/config"
	"markov-bot/internal/cooldown"
	"markov-bot/internal/markov"
	"markov-bot/internal/storage"
	"markov-bot/internal/training"
)

type Command interface {
	Name() string
	Description() string
	Run(ctx interface{}) error
}

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Deps bundles the shared components every command may need.
type Deps struct {
	Config  *config.Store
	Gate    *cooldown.Gate
	Ledger  *training.Ledger
	Chain   *markov.Chain
	Storage *storage.Storage
	Replies *bot.ReplyTracker
}

type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

// User returns the invoking user for guild and DM interactions alike.
func (c *SlashContext) User() *discordgo.User {
	if c.Event.Member != nil {
		return c.Event.Member.User
	}
	return c.Event.User
}

// StringOption returns the named string option, or "" when absent.
func (c *SlashContext) StringOption(name string) string {
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// IntOption returns the named integer option, or fallback when absent.
func (c *SlashContext) IntOption(name string, fallback int64) int64 {
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionInteger {
			return opt.IntValue()
		}
	}
	return fallback
}
