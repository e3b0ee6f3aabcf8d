package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"

	"markov-bot/internal/bot"
)

type LogfileCommand struct{}

func (c *LogfileCommand) Name() string        { return "logfile" }
func (c *LogfileCommand) Description() string { return "Print the tail of the logfile" }

func (c *LogfileCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minLines := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "num_lines",
				Description: "The number of lines to include in the tail of the log file",
				MinValue:    &minLines,
				MaxValue:    50,
			},
		},
	}
}

func (c *LogfileCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*SlashContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	numLines := int(slash.IntOption("num_lines", 10))
	tail, err := logfileTail(slash.Deps.Config.Current().LogfileName, numLines)
	if err != nil {
		return bot.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("Couldn't read the logfile: %v", err))
	}
	return bot.RespondEphemeral(slash.Session, slash.Event, fmt.Sprintf("```%s```", tail))
}

func logfileTail(path string, n int) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n"), nil
}

func init() {
	Register(WithCooldown(&LogfileCommand{}))
}
