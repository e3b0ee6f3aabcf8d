package command

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"markov-bot/internal/bot"
)

type Middleware func(Command) Command

type wrapped struct {
	Command
	run func(ctx interface{}) error
}

func (w *wrapped) Run(ctx interface{}) error { return w.run(ctx) }

func (w *wrapped) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// WithGuildOnly rejects command invocations outside a guild.
func WithGuildOnly(cmd Command) Command {
	return &wrapped{Command: cmd, run: func(ctx interface{}) error {
		slash, ok := ctx.(*SlashContext)
		if !ok {
			return fmt.Errorf("wrong context type")
		}
		if slash.Event.GuildID == "" {
			return bot.RespondEphemeral(slash.Session, slash.Event, "This command can't be used in DMs.")
		}
		return cmd.Run(ctx)
	}}
}

// WithCooldown applies the per-user cooldown gate. Users and guilds on the
// exemption lists bypass the gate entirely.
func WithCooldown(cmd Command) Command {
	return &wrapped{Command: cmd, run: func(ctx interface{}) error {
		slash, ok := ctx.(*SlashContext)
		if !ok {
			return fmt.Errorf("wrong context type")
		}

		user := slash.User()
		if user == nil {
			return fmt.Errorf("interaction has no user")
		}

		snap := slash.Deps.Config.Current()
		exempt := snap.UserExempt(user.ID) || snap.GuildExempt(slash.Event.GuildID)
		if exempt {
			slash.Deps.Gate.RecordInteraction(user.ID)
		} else if !slash.Deps.Gate.Allow(user.ID) {
			return bot.RespondEphemeral(slash.Session, slash.Event, "Slow down, you're on cooldown.")
		}
		return cmd.Run(ctx)
	}}
}
