// Package discord is a thin presentation layer over the almanac HTTP API.
// The bot renders slash commands as API calls; no engine state lives here.
package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Config carries the Discord credentials and the engine API endpoint the
// bot fronts.
type Config struct {
	Token  string
	AppID  string
	APIURL string
	APIKey string
}

// Bot bridges slash-command interactions to the engine's HTTP API.
type Bot struct {
	session  *discordgo.Session
	client   *APIClient
	appID    string
	registry *CommandRegistry
}

// New builds a bot from the config. The gateway connection stays closed
// until Start.
func New(cfg Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Bot{
		session:  session,
		client:   NewAPIClient(cfg.APIURL, cfg.APIKey),
		appID:    cfg.AppID,
		registry: NewCommandRegistry(),
	}, nil
}

// Register adds a slash command and its handler. Call before Start; the
// command set is synced to Discord when the gateway opens.
func (b *Bot) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	b.registry.Register(cmd, handler)
}

// Start opens the gateway connection and overwrites the application's
// command set with everything registered so far.
func (b *Bot) Start() error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "user", s.State.User.Username)
	})
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.registry.Handle(s, i, b.client)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	if err := b.syncCommands(); err != nil {
		b.session.Close()
		return err
	}

	slog.Info("Discord bot is now running")
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		slog.Error("Failed to close Discord session", "error", err)
	}
}
