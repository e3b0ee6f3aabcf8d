package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// sendLimiter throttles outgoing automated replies globally so a burst of
// trigger messages cannot run the bot into Discord's rate limits.
var sendLimiter = rate.NewLimiter(rate.Every(500*time.Millisecond), 3)

// SendMessage sends content to channelID after acquiring a send slot.
func SendMessage(ctx context.Context, s *discordgo.Session, channelID, content string) (*discordgo.Message, error) {
	if err := sendLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.ChannelMessageSend(channelID, content)
}
