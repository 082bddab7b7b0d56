package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// TimeCommand returns the time command definition and handler
func TimeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "time",
		Description: "Show the current in-game date and time",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		resp, err := client.GetTime()
		if err != nil {
			slog.Error("Failed to fetch time", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		description := resp.Display
		if resp.IsPaused {
			description += "\n⏸️ Time is paused."
		}
		if resp.AtDayLimit {
			description += "\n🌙 It's late. Sleep to start the next day."
		}

		sendEmbed(s, i, createEmbed("Almanac", description, ColorInfo))
	}

	return cmd, handler
}

// SleepCommand returns the sleep command definition and handler
func SleepCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "sleep",
		Description: "Sleep until the start of the next day",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		resp, err := client.Sleep()
		if err != nil {
			slog.Error("Failed to sleep", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("Good Morning",
			fmt.Sprintf("You sleep. It is now %s.", resp.Display), ColorSuccess))
	}

	return cmd, handler
}

// PauseCommand returns the pause command definition and handler
func PauseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "pause",
		Description: "Pause the in-game clock",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		if err := client.PauseTime(); err != nil {
			slog.Error("Failed to pause", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendText(s, i, "⏸️ Time is paused.")
	}

	return cmd, handler
}

// ResumeCommand returns the resume command definition and handler
func ResumeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "resume",
		Description: "Resume the in-game clock",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		if err := client.ResumeTime(); err != nil {
			slog.Error("Failed to resume", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendText(s, i, "▶️ Time resumes.")
	}

	return cmd, handler
}
