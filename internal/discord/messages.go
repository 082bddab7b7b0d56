package discord

// Friendly message constants for Discord responses
const (
	MsgUnknownSpecies = "🌱 **Unknown Species**\nMaybe check the spelling? Try /species for the catalog."
	MsgPlantNotFound  = "🔍 **Plant Not Found**\nThat plant id doesn't match anything growing."
	MsgOutOfSeason    = "❄️ **Out of Season**\nThat species won't take root this time of year."

	MsgGenericError = "❌ Something went wrong."
)

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf39c12
)
