package command

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"markov-bot/internal/bot"
	"markov-bot/internal/config"
	"markov-bot/internal/markov"
)

const generateAttempts = 10

type SentenceCommand struct{}

func (c *SentenceCommand) Name() string        { return "sentence" }
func (c *SentenceCommand) Description() string { return "Generate a sentence from the Markov chain" }

func (c *SentenceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "seed",
				Description: "Word to start the sentence from",
			},
		},
	}
}

func (c *SentenceCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	text, err := slash.Deps.Chain.Generate(slash.StringOption("seed"), generateAttempts)
	if err != nil {
		if errors.Is(err, markov.ErrNoSentence) {
			return bot.RespondEphemeral(slash.Session, slash.Event, "I haven't learned enough to say anything yet.")
		}
		return err
	}
	return bot.Respond(slash.Session, slash.Event, truncate(text, config.MaxChars))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	Register(WithCooldown(&SentenceCommand{}))
}
