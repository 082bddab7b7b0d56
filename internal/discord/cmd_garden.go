package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// PlantCommand returns the plant command definition and handler
func PlantCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "plant",
		Description: "Plant a new crop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "species",
				Description: "Species id, e.g. turnip",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		options := getOptions(i)
		speciesID := options[0].StringValue()

		msg, err := client.ExecuteCommand("SPAWN " + speciesID)
		if err != nil {
			slog.Error("Failed to plant", "error", err, "species", speciesID)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("Planted", msg, ColorSuccess))
	}

	return cmd, handler
}

// WaterCommand returns the water command definition and handler
func WaterCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "water",
		Description: "Water a plant",
		Options:     plantIDOption(),
	}

	handler := commandLineHandler("WATER", "Watering Can", ColorInfo)
	return cmd, handler
}

// FertilizeCommand returns the fertilize command definition and handler
func FertilizeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "fertilize",
		Description: "Fertilize a plant",
		Options:     plantIDOption(),
	}

	handler := commandLineHandler("FERTILIZE", "Fertilizer", ColorInfo)
	return cmd, handler
}

// HarvestCommand returns the harvest command definition and handler
func HarvestCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "harvest",
		Description: "Harvest a plant",
		Options:     plantIDOption(),
	}

	handler := commandLineHandler("HARVEST", "Harvest", ColorSuccess)
	return cmd, handler
}

// StatusCommand returns the status command definition and handler
func StatusCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "status",
		Description: "Show a plant's growth status, or the time when no plant is given",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "plant_id",
				Description: "Plant instance id",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		line := "STATUS"
		if options := getOptions(i); len(options) > 0 {
			line += " " + options[0].StringValue()
		}

		msg, err := client.ExecuteCommand(line)
		if err != nil {
			slog.Error("Failed to fetch status", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed("Status", msg, ColorInfo))
	}

	return cmd, handler
}

// SpeciesCommand returns the species catalog command definition and handler
func SpeciesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "species",
		Description: "List plantable species",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		resp, err := client.ListSpecies()
		if err != nil {
			slog.Error("Failed to list species", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		var lines []string
		for _, sp := range resp.Species {
			seasons := make([]string, 0, len(sp.ValidSeasons))
			for _, season := range sp.ValidSeasons {
				seasons = append(seasons, season.String())
			}
			lines = append(lines, fmt.Sprintf("**%s** (`%s`): grows in %s",
				sp.DisplayName, sp.ID, strings.Join(seasons, ", ")))
		}

		sendEmbed(s, i, createEmbed("Species Catalog", strings.Join(lines, "\n"), ColorInfo))
	}

	return cmd, handler
}

// SaveCommand returns the save command definition and handler
func SaveCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "save",
		Description: "Save the session",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		if err := client.SaveSession(); err != nil {
			slog.Error("Failed to save session", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendText(s, i, "💾 Session saved.")
	}

	return cmd, handler
}

// plantIDOption is the shared required plant_id option.
func plantIDOption() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "plant_id",
			Description: "Plant instance id",
			Required:    true,
		},
	}
}

// commandLineHandler builds a handler that forwards "<verb> <plant_id>" to
// the engine's command endpoint and renders the returned message.
func commandLineHandler(verb, title string, color int) CommandHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		options := getOptions(i)
		plantID := options[0].StringValue()

		msg, err := client.ExecuteCommand(verb + " " + plantID)
		if err != nil {
			slog.Error("Command failed", "error", err, "verb", verb)
			respondFriendlyError(s, i, err.Error())
			return
		}

		sendEmbed(s, i, createEmbed(title, msg, color))
	}
}
