package config

// External service endpoints
const (
	// DexScreenerBaseURL is the market metrics API root
	DexScreenerBaseURL = "https://api.dexscreener.io/latest/dex"

	// RugcheckBaseURL is the risk report API root
	RugcheckBaseURL = "https://api.rugcheck.xyz"

	// RugcheckSignInMessage is the message signed during Rugcheck login
	RugcheckSignInMessage = "Sign-in to Rugcheck.xyz"

	// PumpFunAPIBaseURL is the discovery feed API root
	PumpFunAPIBaseURL = "https://frontend-api-v3.pump.fun"

	// TelegramAPIBaseURL is the bot API root for notifications
	TelegramAPIBaseURL = "https://api.telegram.org"
)

// PumpFunAMMAddress is the pool account excluded from holder concentration
const PumpFunAMMAddress = "1AGR5BGaEwgTQpmQmPbAdgqi8jKzFnrsig5FmQRkGdy"

// Watch window defaults
const (
	DefaultMinWatchMinutes  = 2.0
	DefaultMaxWatchMinutes  = 5.0
	DefaultPollIntervalMs   = 1000
	DefaultCycleIntervalSec = 10
)

// Entry criteria defaults
const (
	DefaultMinMarketCapGrowthPct = 15.0
	DefaultMinBuyers             = 10
	DefaultMaxSellerBuyerRatio   = 0.50
	DefaultMaxTopHolderPct       = 30.0
)

// Exit rule defaults
const (
	DefaultStopLossMultiplier   = 0.90
	DefaultTakeProfitMultiplier = 1.50
	DefaultMaxHoldMinutes       = 10.0
)

// Simulation defaults
const (
	DefaultInitialBalance   = 0.1
	DefaultPositionFraction = 0.10
)

// HTTP client defaults
const (
	DefaultMaxRetries         = 3
	DefaultEmptyRetries       = 3
	DefaultEmptyRetryDelaySec = 2
)
