package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coin-alert-bot-go/internal/config"
	"coin-alert-bot-go/internal/discovery"
	"coin-alert-bot-go/internal/engine"
	"coin-alert-bot-go/internal/logger"
	"coin-alert-bot-go/internal/market"
	"coin-alert-bot-go/internal/notify"
	"coin-alert-bot-go/internal/rugcheck"
	"coin-alert-bot-go/internal/store"
	"coin-alert-bot-go/internal/wallet"
)

const Version = "1.0.0"

// CLI flags
var (
	configFile = flag.String("config", "", "Path to config file")
	envFile    = flag.String("env", "", "Path to .env file")
	logLevel   = flag.String("log-level", "", "Log level (debug/info/warn/error)")
	dryRun     = flag.Bool("dry-run", false, "Dry run mode (no alerts delivered)")
)

// App wires the lifecycle engine, position tracker, and their sources
type App struct {
	config    *config.Config
	logger    *logger.Logger
	store     *store.RedisStore
	discovery *discovery.Client
	rugcheck  *rugcheck.Client
	engine    *engine.Engine
	tracker   *engine.PositionTracker
	ctx       context.Context
	cancel    context.CancelFunc
}

func main() {
	flag.Parse()

	cfg := loadConfiguration()
	log := initializeLogger(cfg)

	app, err := NewApp(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create application")
	}

	if err := app.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start application")
	}
}

func loadConfiguration() *config.Config {
	configPath := "configs/bot.yaml"
	if *configFile != "" {
		configPath = *configFile
	}

	cfg, err := config.LoadConfig(configPath, *envFile)
	if err != nil {
		fmt.Printf("Warning: Failed to load YAML config (%v), using environment variables only\n", err)
		cfg = config.GetConfigFromEnv(*envFile)
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	return cfg
}

func initializeLogger(cfg *config.Config) *logger.Logger {
	logConfig := logger.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		LogToFile:   cfg.Logging.LogToFile,
		LogFilePath: cfg.Logging.LogFilePath,
	}

	log, err := logger.NewLogger(logConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return log
}

func NewApp(cfg *config.Config, log *logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	redisStore, err := store.NewRedisStore(store.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}, log)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	metricsClient := market.NewClient(market.Config{
		BaseURL:         cfg.Market.BaseURL,
		Timeout:         time.Duration(cfg.Market.TimeoutSec) * time.Second,
		MaxRetries:      cfg.Market.MaxRetries,
		EmptyRetries:    cfg.Market.EmptyRetries,
		EmptyRetryDelay: time.Duration(cfg.Market.EmptyRetryDelaySec) * time.Second,
	}, log)

	discoveryClient := discovery.NewClient(discovery.Config{
		BaseURL:     cfg.Discovery.BaseURL,
		Timeout:     time.Duration(cfg.Discovery.TimeoutSec) * time.Second,
		IncludeNSFW: cfg.Discovery.IncludeNSFW,
	}, log)

	var rugcheckClient *rugcheck.Client
	var riskSource engine.RiskSource
	if cfg.Rugcheck.Enabled {
		identity, err := buildWallet(cfg)
		if err != nil {
			cancel()
			redisStore.Close()
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}

		rugcheckClient = rugcheck.NewClient(rugcheck.Config{
			BaseURL:       cfg.Rugcheck.BaseURL,
			SignInMessage: config.RugcheckSignInMessage,
			Timeout:       time.Duration(cfg.Rugcheck.TimeoutSec) * time.Second,
		}, identity, log)
		riskSource = rugcheckClient
	}

	var sink notify.Sink = notify.NopSink{}
	if cfg.Telegram.Enabled && !*dryRun {
		sink = notify.NewTelegramSink(notify.Config{
			BaseURL:  config.TelegramAPIBaseURL,
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			Timeout:  time.Duration(cfg.Advanced.HTTPTimeoutSec) * time.Second,
		}, log)
	}

	evaluator := engine.NewCriteriaEvaluator(engine.CriteriaConfig{
		MinMarketCapGrowthPct: cfg.Criteria.MinMarketCapGrowthPct,
		MinBuyers:             cfg.Criteria.MinBuyers,
		MaxSellerBuyerRatio:   cfg.Criteria.MaxSellerBuyerRatio,
		MaxTopHolderPct:       cfg.Criteria.MaxTopHolderPct,
		PoolAddress:           config.PumpFunAMMAddress,
	})

	lifecycleEngine := engine.NewEngine(redisStore, metricsClient, riskSource, sink, evaluator, engine.WatchSettings{
		MinWatchDelay: cfg.GetMinWatchDelay(),
		WatchWindow:   cfg.GetWatchWindow(),
		PollInterval:  cfg.GetPollInterval(),
	}, log)

	ledger := engine.NewSimulationLedger(redisStore, engine.LedgerSettings{
		InitialBalance:   cfg.Simulation.InitialBalance,
		PositionFraction: cfg.Simulation.PositionFraction,
	}, log)

	tracker := engine.NewPositionTracker(redisStore, metricsClient, ledger, engine.ExitSettings{
		StopLossMultiplier:   cfg.Exit.StopLossMultiplier,
		TakeProfitMultiplier: cfg.Exit.TakeProfitMultiplier,
		MaxHold:              cfg.GetMaxHoldDuration(),
	}, log)

	return &App{
		config:    cfg,
		logger:    log,
		store:     redisStore,
		discovery: discoveryClient,
		rugcheck:  rugcheckClient,
		engine:    lifecycleEngine,
		tracker:   tracker,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

func buildWallet(cfg *config.Config) (*wallet.Wallet, error) {
	if cfg.Wallet.PrivateKey != "" {
		return wallet.NewWalletFromPrivateKey(cfg.Wallet.PrivateKey)
	}
	return wallet.NewWalletFromMnemonic(cfg.Wallet.Mnemonic)
}

func (a *App) Start() error {
	a.logger.LogStartup(Version, *dryRun)

	if a.rugcheck != nil {
		loginCtx, cancel := context.WithTimeout(a.ctx, 15*time.Second)
		err := a.rugcheck.Login(loginCtx)
		cancel()
		if err != nil {
			// Risk reports are an entry criterion, so a failed login means
			// reduced coverage, not a dead bot.
			a.logger.WithError(err).Warn("⚠️ Rugcheck login failed, running without risk reports")
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- a.run()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("🎯 Bot started - watching for new tokens!")

	select {
	case sig := <-sigChan:
		a.logger.Info(fmt.Sprintf("🛑 Received signal: %v", sig))
		a.shutdown()
		return nil
	case err := <-errChan:
		a.shutdown()
		return err
	}
}

// run is the main scheduler loop: each cycle pulls the discovery feed,
// advances watched tokens, and sweeps open positions.
func (a *App) run() error {
	cycleTicker := time.NewTicker(a.config.GetCycleInterval())
	defer cycleTicker.Stop()

	statsTicker := time.NewTicker(a.config.GetStatsInterval())
	defer statsTicker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return nil

		case <-cycleTicker.C:
			a.cycle()

		case <-statsTicker.C:
			a.logStats()
		}
	}
}

func (a *App) cycle() {
	candidate, err := a.discovery.FetchCandidate(a.ctx)
	if err != nil {
		a.logger.WithComponent("discovery").WithError(err).Warn("discovery fetch failed")
	} else if err := a.engine.Intake(a.ctx, candidate); err != nil {
		a.logger.WithComponent("engine").WithError(err).Warn("token intake failed")
	}

	if err := a.engine.Advance(a.ctx); err != nil {
		a.logger.WithComponent("engine").WithError(err).Warn("lifecycle advance failed")
	}

	if err := a.tracker.Track(a.ctx); err != nil {
		a.logger.WithComponent("tracker").WithError(err).Warn("position sweep failed")
	}
}

func (a *App) logStats() {
	fails, err := a.store.GetCriterionFails(a.ctx)
	if err != nil {
		a.logger.WithComponent("stats").WithError(err).Warn("failed to read fail counters")
		return
	}

	stats := map[string]interface{}{}
	for criterion, count := range fails {
		stats["fails_"+criterion] = count
	}

	ledger, err := a.store.GetLedger(a.ctx)
	if err == nil && ledger != nil {
		stats["balance"] = ledger.Balance.String()
		stats["total_trades"] = ledger.TotalTrades
		stats["winrate"] = ledger.Winrate
	}

	a.logger.WithFields(stats).Info("📊 Cycle statistics")
}

func (a *App) shutdown() {
	a.logger.LogShutdown("signal received")
	a.cancel()

	// Let in-flight watch tasks drain before closing the store
	a.engine.Wait()

	if err := a.store.Close(); err != nil {
		a.logger.WithError(err).Warn("failed to close store")
	}

	a.logger.Info("✅ Shutdown complete")
}
