package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Wallet identity used to sign the Rugcheck login message
	Wallet WalletConfig `mapstructure:"wallet" yaml:"wallet"`

	// Watch window / scheduler settings
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`

	// Entry criteria thresholds
	Criteria CriteriaConfig `mapstructure:"criteria" yaml:"criteria"`

	// Exit rules for tracked positions
	Exit ExitConfig `mapstructure:"exit" yaml:"exit"`

	// Equity simulation settings
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`

	// Persistent store settings
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`

	// Notification settings
	Telegram TelegramConfig `mapstructure:"telegram" yaml:"telegram"`

	// Risk report source settings
	Rugcheck RugcheckConfig `mapstructure:"rugcheck" yaml:"rugcheck"`

	// Market metrics source settings
	Market MarketConfig `mapstructure:"market" yaml:"market"`

	// Discovery feed settings
	Discovery DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`

	// Logging settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Advanced settings
	Advanced AdvancedConfig `mapstructure:"advanced" yaml:"advanced"`
}

// WalletConfig contains the signing identity
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key" yaml:"private_key"`
	Mnemonic   string `mapstructure:"mnemonic" yaml:"mnemonic"`
}

// WatchConfig contains watch-window and scheduler timing
type WatchConfig struct {
	MinWatchMinutes  float64 `mapstructure:"min_watch_minutes" yaml:"min_watch_minutes"`
	MaxWatchMinutes  float64 `mapstructure:"max_watch_minutes" yaml:"max_watch_minutes"`
	PollIntervalMs   int64   `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`
	CycleIntervalSec int     `mapstructure:"cycle_interval_sec" yaml:"cycle_interval_sec"`
}

// CriteriaConfig contains entry-criteria thresholds
type CriteriaConfig struct {
	MinMarketCapGrowthPct float64 `mapstructure:"min_market_cap_growth_pct" yaml:"min_market_cap_growth_pct"`
	MinBuyers             int     `mapstructure:"min_buyers" yaml:"min_buyers"`
	MaxSellerBuyerRatio   float64 `mapstructure:"max_seller_buyer_ratio" yaml:"max_seller_buyer_ratio"`
	MaxTopHolderPct       float64 `mapstructure:"max_top_holder_pct" yaml:"max_top_holder_pct"`
}

// ExitConfig contains position exit rules
type ExitConfig struct {
	StopLossMultiplier   float64 `mapstructure:"stop_loss_multiplier" yaml:"stop_loss_multiplier"`
	TakeProfitMultiplier float64 `mapstructure:"take_profit_multiplier" yaml:"take_profit_multiplier"`
	MaxHoldMinutes       float64 `mapstructure:"max_hold_minutes" yaml:"max_hold_minutes"`
}

// SimulationConfig contains equity simulation settings
type SimulationConfig struct {
	InitialBalance   float64 `mapstructure:"initial_balance" yaml:"initial_balance"`
	PositionFraction float64 `mapstructure:"position_fraction" yaml:"position_fraction"`
}

// RedisConfig contains persistent store settings
type RedisConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	PoolSize int    `mapstructure:"pool_size" yaml:"pool_size"`
}

// TelegramConfig contains notification settings
type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	BotToken string `mapstructure:"bot_token" yaml:"bot_token"`
	ChatID   string `mapstructure:"chat_id" yaml:"chat_id"`
}

// RugcheckConfig contains risk source settings
type RugcheckConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// MarketConfig contains metrics source settings
type MarketConfig struct {
	BaseURL            string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSec         int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	MaxRetries         int    `mapstructure:"max_retries" yaml:"max_retries"`
	EmptyRetries       int    `mapstructure:"empty_retries" yaml:"empty_retries"`
	EmptyRetryDelaySec int    `mapstructure:"empty_retry_delay_sec" yaml:"empty_retry_delay_sec"`
}

// DiscoveryConfig contains discovery feed settings
type DiscoveryConfig struct {
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSec  int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
	IncludeNSFW bool   `mapstructure:"include_nsfw" yaml:"include_nsfw"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	LogToFile   bool   `mapstructure:"log_to_file" yaml:"log_to_file"`
	LogFilePath string `mapstructure:"log_file_path" yaml:"log_file_path"`
}

// AdvancedConfig contains advanced settings
type AdvancedConfig struct {
	StatsIntervalSec int `mapstructure:"stats_interval_sec" yaml:"stats_interval_sec"`
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string, envPath string) (*Config, error) {
	config := &Config{}

	// First, load .env file if specified or default locations
	if err := loadEnvFile(envPath); err != nil {
		fmt.Printf("Warning: Failed to load .env file: %v\n", err)
	}

	// Set default values
	setDefaults()

	// Set config file path
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		// Look for config in current directory and common config directories
		viper.SetConfigName("bot")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("$HOME/.coin-alert-bot")
		viper.AddConfigPath("/etc/coin-alert-bot/")
	}

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("COINBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Manually bind environment variables that viper might miss
	bindEnvVariables()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, continue with defaults and env vars
		fmt.Printf("Config file not found, using environment variables and defaults\n")
	} else {
		fmt.Printf("Using config file: %s\n", viper.ConfigFileUsed())
	}

	// Unmarshal config
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate and post-process config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// loadEnvFile loads environment variables from .env file
func loadEnvFile(envPath string) error {
	var envFiles []string

	// If specific path provided, use it first
	if envPath != "" {
		envFiles = append(envFiles, envPath)
	}

	// Add default .env file locations
	envFiles = append(envFiles, []string{
		".env",
		"./.env",
		"configs/.env",
	}...)

	var envFile string
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			envFile = file
			break
		}
	}

	if envFile == "" {
		if envPath != "" {
			return fmt.Errorf("specified .env file not found: %s", envPath)
		}
		return fmt.Errorf(".env file not found in any of the expected locations: %v", envFiles)
	}

	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	loadedCount := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE format
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])

				// Remove quotes if present
				if len(value) >= 2 {
					if (strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"")) ||
						(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
						value = value[1 : len(value)-1]
					}
				}

				if err := os.Setenv(key, value); err == nil {
					loadedCount++
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	fmt.Printf("Loaded %d environment variables from %s\n", loadedCount, envFile)
	return nil
}

// bindEnvVariables manually binds environment variables that viper might miss
func bindEnvVariables() {
	// Wallet variables
	viper.BindEnv("wallet.private_key", "COINBOT_WALLET_PRIVATE_KEY")
	viper.BindEnv("wallet.mnemonic", "COINBOT_WALLET_MNEMONIC")

	// Watch variables
	viper.BindEnv("watch.min_watch_minutes", "COINBOT_WATCH_MIN_WATCH_MINUTES")
	viper.BindEnv("watch.max_watch_minutes", "COINBOT_WATCH_MAX_WATCH_MINUTES")
	viper.BindEnv("watch.poll_interval_ms", "COINBOT_WATCH_POLL_INTERVAL_MS")
	viper.BindEnv("watch.cycle_interval_sec", "COINBOT_WATCH_CYCLE_INTERVAL_SEC")

	// Criteria variables
	viper.BindEnv("criteria.min_market_cap_growth_pct", "COINBOT_CRITERIA_MIN_MARKET_CAP_GROWTH_PCT")
	viper.BindEnv("criteria.min_buyers", "COINBOT_CRITERIA_MIN_BUYERS")
	viper.BindEnv("criteria.max_seller_buyer_ratio", "COINBOT_CRITERIA_MAX_SELLER_BUYER_RATIO")
	viper.BindEnv("criteria.max_top_holder_pct", "COINBOT_CRITERIA_MAX_TOP_HOLDER_PCT")

	// Exit variables
	viper.BindEnv("exit.stop_loss_multiplier", "COINBOT_EXIT_STOP_LOSS_MULTIPLIER")
	viper.BindEnv("exit.take_profit_multiplier", "COINBOT_EXIT_TAKE_PROFIT_MULTIPLIER")
	viper.BindEnv("exit.max_hold_minutes", "COINBOT_EXIT_MAX_HOLD_MINUTES")

	// Simulation variables
	viper.BindEnv("simulation.initial_balance", "COINBOT_SIMULATION_INITIAL_BALANCE")
	viper.BindEnv("simulation.position_fraction", "COINBOT_SIMULATION_POSITION_FRACTION")

	// Redis variables
	viper.BindEnv("redis.host", "COINBOT_REDIS_HOST")
	viper.BindEnv("redis.port", "COINBOT_REDIS_PORT")
	viper.BindEnv("redis.password", "COINBOT_REDIS_PASSWORD")
	viper.BindEnv("redis.db", "COINBOT_REDIS_DB")

	// Telegram variables
	viper.BindEnv("telegram.enabled", "COINBOT_TELEGRAM_ENABLED")
	viper.BindEnv("telegram.bot_token", "COINBOT_TELEGRAM_BOT_TOKEN")
	viper.BindEnv("telegram.chat_id", "COINBOT_TELEGRAM_CHAT_ID")

	// Rugcheck variables
	viper.BindEnv("rugcheck.enabled", "COINBOT_RUGCHECK_ENABLED")
	viper.BindEnv("rugcheck.base_url", "COINBOT_RUGCHECK_BASE_URL")

	// Market variables
	viper.BindEnv("market.base_url", "COINBOT_MARKET_BASE_URL")
	viper.BindEnv("market.max_retries", "COINBOT_MARKET_MAX_RETRIES")
	viper.BindEnv("market.empty_retries", "COINBOT_MARKET_EMPTY_RETRIES")

	// Discovery variables
	viper.BindEnv("discovery.base_url", "COINBOT_DISCOVERY_BASE_URL")
	viper.BindEnv("discovery.include_nsfw", "COINBOT_DISCOVERY_INCLUDE_NSFW")

	// Logging variables
	viper.BindEnv("logging.level", "COINBOT_LOGGING_LEVEL")
	viper.BindEnv("logging.format", "COINBOT_LOGGING_FORMAT")
	viper.BindEnv("logging.log_to_file", "COINBOT_LOGGING_LOG_TO_FILE")
}

// setDefaults sets default configuration values
func setDefaults() {
	// Watch defaults
	viper.SetDefault("watch.min_watch_minutes", DefaultMinWatchMinutes)
	viper.SetDefault("watch.max_watch_minutes", DefaultMaxWatchMinutes)
	viper.SetDefault("watch.poll_interval_ms", DefaultPollIntervalMs)
	viper.SetDefault("watch.cycle_interval_sec", DefaultCycleIntervalSec)

	// Criteria defaults
	viper.SetDefault("criteria.min_market_cap_growth_pct", DefaultMinMarketCapGrowthPct)
	viper.SetDefault("criteria.min_buyers", DefaultMinBuyers)
	viper.SetDefault("criteria.max_seller_buyer_ratio", DefaultMaxSellerBuyerRatio)
	viper.SetDefault("criteria.max_top_holder_pct", DefaultMaxTopHolderPct)

	// Exit defaults
	viper.SetDefault("exit.stop_loss_multiplier", DefaultStopLossMultiplier)
	viper.SetDefault("exit.take_profit_multiplier", DefaultTakeProfitMultiplier)
	viper.SetDefault("exit.max_hold_minutes", DefaultMaxHoldMinutes)

	// Simulation defaults
	viper.SetDefault("simulation.initial_balance", DefaultInitialBalance)
	viper.SetDefault("simulation.position_fraction", DefaultPositionFraction)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	// Telegram defaults
	viper.SetDefault("telegram.enabled", true)
	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.chat_id", "")

	// Rugcheck defaults
	viper.SetDefault("rugcheck.enabled", true)
	viper.SetDefault("rugcheck.base_url", RugcheckBaseURL)
	viper.SetDefault("rugcheck.timeout_sec", 10)

	// Market defaults
	viper.SetDefault("market.base_url", DexScreenerBaseURL)
	viper.SetDefault("market.timeout_sec", 10)
	viper.SetDefault("market.max_retries", DefaultMaxRetries)
	viper.SetDefault("market.empty_retries", DefaultEmptyRetries)
	viper.SetDefault("market.empty_retry_delay_sec", DefaultEmptyRetryDelaySec)

	// Discovery defaults
	viper.SetDefault("discovery.base_url", PumpFunAPIBaseURL)
	viper.SetDefault("discovery.timeout_sec", 5)
	viper.SetDefault("discovery.include_nsfw", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.log_to_file", false)
	viper.SetDefault("logging.log_file_path", "logs/bot.log")

	// Advanced defaults
	viper.SetDefault("advanced.stats_interval_sec", 60)
	viper.SetDefault("advanced.http_timeout_sec", 10)
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Watch.MinWatchMinutes < 0 {
		return fmt.Errorf("watch.min_watch_minutes must be non-negative")
	}
	if config.Watch.MaxWatchMinutes <= config.Watch.MinWatchMinutes {
		return fmt.Errorf("watch.max_watch_minutes (%v) must be greater than watch.min_watch_minutes (%v)",
			config.Watch.MaxWatchMinutes, config.Watch.MinWatchMinutes)
	}
	if config.Watch.PollIntervalMs <= 0 {
		return fmt.Errorf("watch.poll_interval_ms must be positive")
	}
	if config.Watch.CycleIntervalSec <= 0 {
		return fmt.Errorf("watch.cycle_interval_sec must be positive")
	}

	if config.Criteria.MinBuyers < 0 {
		return fmt.Errorf("criteria.min_buyers must be non-negative")
	}
	if config.Criteria.MaxSellerBuyerRatio <= 0 || config.Criteria.MaxSellerBuyerRatio > 1 {
		return fmt.Errorf("criteria.max_seller_buyer_ratio must be in (0, 1]")
	}
	if config.Criteria.MaxTopHolderPct <= 0 || config.Criteria.MaxTopHolderPct > 100 {
		return fmt.Errorf("criteria.max_top_holder_pct must be in (0, 100]")
	}

	if config.Exit.StopLossMultiplier <= 0 || config.Exit.StopLossMultiplier >= 1 {
		return fmt.Errorf("exit.stop_loss_multiplier must be in (0, 1)")
	}
	if config.Exit.TakeProfitMultiplier <= 1 {
		return fmt.Errorf("exit.take_profit_multiplier must be greater than 1")
	}
	if config.Exit.MaxHoldMinutes <= 0 {
		return fmt.Errorf("exit.max_hold_minutes must be positive")
	}

	if config.Simulation.InitialBalance <= 0 {
		return fmt.Errorf("simulation.initial_balance must be positive")
	}
	if config.Simulation.PositionFraction <= 0 || config.Simulation.PositionFraction > 1 {
		return fmt.Errorf("simulation.position_fraction must be in (0, 1]")
	}

	if config.Rugcheck.Enabled && config.Wallet.PrivateKey == "" && config.Wallet.Mnemonic == "" {
		return fmt.Errorf("wallet.private_key or wallet.mnemonic is required when rugcheck is enabled")
	}

	// Create log directory if needed
	if config.Logging.LogToFile {
		logDir := filepath.Dir(config.Logging.LogFilePath)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	return nil
}

// Duration helper methods

func (c *Config) GetMinWatchDelay() time.Duration {
	return time.Duration(c.Watch.MinWatchMinutes * float64(time.Minute))
}

func (c *Config) GetWatchWindow() time.Duration {
	return time.Duration(c.Watch.MaxWatchMinutes * float64(time.Minute))
}

func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Watch.PollIntervalMs) * time.Millisecond
}

func (c *Config) GetCycleInterval() time.Duration {
	return time.Duration(c.Watch.CycleIntervalSec) * time.Second
}

func (c *Config) GetMaxHoldDuration() time.Duration {
	return time.Duration(c.Exit.MaxHoldMinutes * float64(time.Minute))
}

func (c *Config) GetStatsInterval() time.Duration {
	return time.Duration(c.Advanced.StatsIntervalSec) * time.Second
}

// Helper functions for environment variables
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// GetConfigFromEnv loads configuration from environment variables only
func GetConfigFromEnv(envPath string) *Config {
	if err := loadEnvFile(envPath); err != nil {
		fmt.Printf("Warning: Failed to load .env file: %v\n", err)
	}

	return &Config{
		Wallet: WalletConfig{
			PrivateKey: getEnvString("COINBOT_WALLET_PRIVATE_KEY", ""),
			Mnemonic:   getEnvString("COINBOT_WALLET_MNEMONIC", ""),
		},
		Watch: WatchConfig{
			MinWatchMinutes:  getEnvFloat("COINBOT_WATCH_MIN_WATCH_MINUTES", DefaultMinWatchMinutes),
			MaxWatchMinutes:  getEnvFloat("COINBOT_WATCH_MAX_WATCH_MINUTES", DefaultMaxWatchMinutes),
			PollIntervalMs:   int64(getEnvInt("COINBOT_WATCH_POLL_INTERVAL_MS", DefaultPollIntervalMs)),
			CycleIntervalSec: getEnvInt("COINBOT_WATCH_CYCLE_INTERVAL_SEC", DefaultCycleIntervalSec),
		},
		Criteria: CriteriaConfig{
			MinMarketCapGrowthPct: getEnvFloat("COINBOT_CRITERIA_MIN_MARKET_CAP_GROWTH_PCT", DefaultMinMarketCapGrowthPct),
			MinBuyers:             getEnvInt("COINBOT_CRITERIA_MIN_BUYERS", DefaultMinBuyers),
			MaxSellerBuyerRatio:   getEnvFloat("COINBOT_CRITERIA_MAX_SELLER_BUYER_RATIO", DefaultMaxSellerBuyerRatio),
			MaxTopHolderPct:       getEnvFloat("COINBOT_CRITERIA_MAX_TOP_HOLDER_PCT", DefaultMaxTopHolderPct),
		},
		Exit: ExitConfig{
			StopLossMultiplier:   getEnvFloat("COINBOT_EXIT_STOP_LOSS_MULTIPLIER", DefaultStopLossMultiplier),
			TakeProfitMultiplier: getEnvFloat("COINBOT_EXIT_TAKE_PROFIT_MULTIPLIER", DefaultTakeProfitMultiplier),
			MaxHoldMinutes:       getEnvFloat("COINBOT_EXIT_MAX_HOLD_MINUTES", DefaultMaxHoldMinutes),
		},
		Simulation: SimulationConfig{
			InitialBalance:   getEnvFloat("COINBOT_SIMULATION_INITIAL_BALANCE", DefaultInitialBalance),
			PositionFraction: getEnvFloat("COINBOT_SIMULATION_POSITION_FRACTION", DefaultPositionFraction),
		},
		Redis: RedisConfig{
			Host:     getEnvString("COINBOT_REDIS_HOST", "localhost"),
			Port:     getEnvString("COINBOT_REDIS_PORT", "6379"),
			Password: getEnvString("COINBOT_REDIS_PASSWORD", ""),
			DB:       getEnvInt("COINBOT_REDIS_DB", 0),
			PoolSize: getEnvInt("COINBOT_REDIS_POOL_SIZE", 10),
		},
		Telegram: TelegramConfig{
			Enabled:  getEnvBool("COINBOT_TELEGRAM_ENABLED", true),
			BotToken: getEnvString("COINBOT_TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnvString("COINBOT_TELEGRAM_CHAT_ID", ""),
		},
		Rugcheck: RugcheckConfig{
			Enabled:    getEnvBool("COINBOT_RUGCHECK_ENABLED", true),
			BaseURL:    getEnvString("COINBOT_RUGCHECK_BASE_URL", RugcheckBaseURL),
			TimeoutSec: getEnvInt("COINBOT_RUGCHECK_TIMEOUT_SEC", 10),
		},
		Market: MarketConfig{
			BaseURL:            getEnvString("COINBOT_MARKET_BASE_URL", DexScreenerBaseURL),
			TimeoutSec:         getEnvInt("COINBOT_MARKET_TIMEOUT_SEC", 10),
			MaxRetries:         getEnvInt("COINBOT_MARKET_MAX_RETRIES", DefaultMaxRetries),
			EmptyRetries:       getEnvInt("COINBOT_MARKET_EMPTY_RETRIES", DefaultEmptyRetries),
			EmptyRetryDelaySec: getEnvInt("COINBOT_MARKET_EMPTY_RETRY_DELAY_SEC", DefaultEmptyRetryDelaySec),
		},
		Discovery: DiscoveryConfig{
			BaseURL:     getEnvString("COINBOT_DISCOVERY_BASE_URL", PumpFunAPIBaseURL),
			TimeoutSec:  getEnvInt("COINBOT_DISCOVERY_TIMEOUT_SEC", 5),
			IncludeNSFW: getEnvBool("COINBOT_DISCOVERY_INCLUDE_NSFW", true),
		},
		Logging: LoggingConfig{
			Level:       getEnvString("COINBOT_LOGGING_LEVEL", "info"),
			Format:      getEnvString("COINBOT_LOGGING_FORMAT", "text"),
			LogToFile:   getEnvBool("COINBOT_LOGGING_LOG_TO_FILE", false),
			LogFilePath: getEnvString("COINBOT_LOGGING_LOG_FILE_PATH", "logs/bot.log"),
		},
		Advanced: AdvancedConfig{
			StatsIntervalSec: getEnvInt("COINBOT_ADVANCED_STATS_INTERVAL_SEC", 60),
			HTTPTimeoutSec:   getEnvInt("COINBOT_ADVANCED_HTTP_TIMEOUT_SEC", 10),
		},
	}
}
