package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/greenhollow/almanac/internal/discord"
	"github.com/greenhollow/almanac/internal/logger"
)

func main() {
	_ = godotenv.Load()

	logger.InitLogger(logger.Config{
		Level:       getEnv("LOG_LEVEL", "INFO"),
		Format:      getEnv("LOG_FORMAT", "text"),
		ServiceName: "almanac-discord",
		Version:     getEnv("SERVICE_VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
	})

	token := os.Getenv("DISCORD_TOKEN")
	appID := os.Getenv("DISCORD_APP_ID")
	if token == "" || appID == "" {
		log.Fatal("DISCORD_TOKEN and DISCORD_APP_ID are required")
	}

	bot, err := discord.New(discord.Config{
		Token:  token,
		AppID:  appID,
		APIURL: getEnv("API_URL", "http://localhost:8080"),
		APIKey: os.Getenv("API_KEY"),
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	registerCommands(bot)

	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}
	defer bot.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
}

func registerCommands(bot *discord.Bot) {
	bot.Register(discord.TimeCommand())
	bot.Register(discord.SleepCommand())
	bot.Register(discord.PauseCommand())
	bot.Register(discord.ResumeCommand())
	bot.Register(discord.PlantCommand())
	bot.Register(discord.WaterCommand())
	bot.Register(discord.FertilizeCommand())
	bot.Register(discord.HarvestCommand())
	bot.Register(discord.StatusCommand())
	bot.Register(discord.SpeciesCommand())
	bot.Register(discord.SaveCommand())
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
