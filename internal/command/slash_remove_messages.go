package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"markov-bot/internal/bot"
)

// bulkDeleteLimit is Discord's maximum batch size for bulk message deletion.
const bulkDeleteLimit = 100

type RemoveMessagesCommand struct{}

func (c *RemoveMessagesCommand) Name() string { return "remove_markov_messages" }
func (c *RemoveMessagesCommand) Description() string {
	return "Remove all of the bot's messages since the last restart"
}

func (c *RemoveMessagesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *RemoveMessagesCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	if slash.Deps.Replies.Len() == 0 {
		return bot.RespondEphemeral(slash.Session, slash.Event, "There is nothing to remove.")
	}
	if err := bot.DeferEphemeral(slash.Session, slash.Event); err != nil {
		return err
	}

	deleted := 0
	for channelID, messageIDs := range slash.Deps.Replies.Drain() {
		for i := 0; i < len(messageIDs); i += bulkDeleteLimit {
			batch := messageIDs[i:min(i+bulkDeleteLimit, len(messageIDs))]
			if err := slash.Session.ChannelMessagesBulkDelete(channelID, batch); err != nil {
				log.Error().Err(err).Str("channel", channelID).Msg("failed to bulk delete messages")
				continue
			}
			deleted += len(batch)
		}
	}
	return bot.EditResponse(slash.Session, slash.Event, fmt.Sprintf("Deleted %d of my messages.", deleted))
}

func init() {
	Register(WithGuildOnly(WithCooldown(&RemoveMessagesCommand{})))
}
