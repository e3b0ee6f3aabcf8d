package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"markov-bot/internal/bot"
	v "markov-bot/internal/version"
)

type VersionCommand struct{}

func (c *VersionCommand) Name() string        { return "version" }
func (c *VersionCommand) Description() string { return "Print the current version of the bot" }

func (c *VersionCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *VersionCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	reply := fmt.Sprintf("%s %s (%s)", v.AppName, v.Version, v.GoVersion)
	if stats, err := slash.Deps.Storage.Stats(); err == nil && stats.MessagesLearned > 0 {
		reply += fmt.Sprintf("\nLearned from %d messages, last update %s.",
			stats.MessagesLearned, stats.LastUpdate.Format("2006-01-02 15:04"))
	}
	return bot.RespondEphemeral(slash.Session, slash.Event, reply)
}

func init() {
	Register(WithCooldown(&VersionCommand{}))
}
