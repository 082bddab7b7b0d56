package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	if h, ok := r.Handlers[i.ApplicationCommandData().Name]; ok {
		h(s, i, client)
	}
}

// syncCommands replaces the application's command set with the registry
// contents. Bulk overwrite makes stale commands disappear in the same call.
func (b *Bot) syncCommands() error {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(b.registry.Commands))
	for _, cmd := range b.registry.Commands {
		cmds = append(cmds, cmd)
	}

	slog.Info("Registering Discord commands", "count", len(cmds))
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.appID, "", cmds); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}

// deferResponse acknowledges the interaction so slow API calls don't hit the
// three-second interaction deadline. Returns false if deferral failed.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// getOptions extracts command options from an interaction.
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// sendText edits the deferred response with a plain text message.
func sendText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// sendEmbed edits the deferred response with an embed.
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// respondFriendlyError renders an API error as a readable message.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	sendText(s, i, formatFriendlyError(message))
}

// formatFriendlyError cleans up technical error messages
func formatFriendlyError(msg string) string {
	msg = strings.TrimPrefix(msg, "API error: ")

	switch {
	case strings.Contains(msg, "Unknown species"):
		return MsgUnknownSpecies
	case strings.Contains(msg, "No plant found"):
		return MsgPlantNotFound
	case strings.Contains(msg, "planted this season"):
		return MsgOutOfSeason
	default:
		return "❌ " + msg
	}
}

// Footer text for user-facing embeds.
const FooterAlmanac = "Greenhollow Almanac"

// createEmbed creates a standard embed.
func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterAlmanac,
		},
	}
}
