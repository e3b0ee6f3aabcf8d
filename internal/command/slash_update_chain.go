package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"markov-bot/internal/bot"
	"markov-bot/internal/training"
)

type UpdateChainCommand struct{}

func (c *UpdateChainCommand) Name() string { return "update_markov_chain" }
func (c *UpdateChainCommand) Description() string {
	return "Force update the Markov chain for /sentence"
}

func (c *UpdateChainCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *UpdateChainCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	if err := bot.DeferEphemeral(slash.Session, slash.Event); err != nil {
		return err
	}

	res, err := slash.Deps.Ledger.Flush(context.Background(), training.TriggerManual)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("manual markov chain update failed")
		return bot.EditResponse(slash.Session, slash.Event, fmt.Sprintf("Markov chain update failed: %v", err))
	case res.Disabled:
		return bot.EditResponse(slash.Session, slash.Event, "Updating the Markov chain has been disabled.")
	default:
		return bot.EditResponse(slash.Session, slash.Event,
			fmt.Sprintf("Markov chain has been updated with %d messages.", res.Count))
	}
}

func init() {
	Register(WithGuildOnly(WithCooldown(&UpdateChainCommand{})))
}
