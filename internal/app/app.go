// Package app wires configuration, clients, storage, and services together.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fincatch/fincatch/internal/clients"
	"github.com/fincatch/fincatch/internal/clients/sjc"
	"github.com/fincatch/fincatch/internal/clients/ssi"
	"github.com/fincatch/fincatch/internal/clients/vietcombank"
	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/interfaces"
	"github.com/fincatch/fincatch/internal/services/currency"
	"github.com/fincatch/fincatch/internal/services/performance"
	"github.com/fincatch/fincatch/internal/storage"
)

// App holds all initialized services, clients, and storage. It is the shared
// core behind cmd/fincatch-server.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	Storage            interfaces.StorageManager
	MarketData         interfaces.MarketDataProvider
	CurrencyService    interfaces.CurrencyService
	PerformanceService interfaces.PerformanceService
	StartupTime        time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FINCATCH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "fincatch.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/fincatch.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	stockClient := ssi.NewClient(
		ssi.WithBaseURL(config.Clients.SSI.BaseURL),
		ssi.WithRateLimit(config.Clients.SSI.RateLimit),
		ssi.WithTimeout(config.Clients.SSI.GetTimeout()),
		ssi.WithLogger(logger),
	)
	goldClient := sjc.NewClient(
		sjc.WithBaseURL(config.Clients.SJC.BaseURL),
		sjc.WithRateLimit(config.Clients.SJC.RateLimit),
		sjc.WithTimeout(config.Clients.SJC.GetTimeout()),
		sjc.WithLogger(logger),
	)
	rateClient := vietcombank.NewClient(
		vietcombank.WithBaseURL(config.Clients.Vietcombank.BaseURL),
		vietcombank.WithRateLimit(config.Clients.Vietcombank.RateLimit),
		vietcombank.WithTimeout(config.Clients.Vietcombank.GetTimeout()),
		vietcombank.WithLogger(logger),
	)

	marketData := clients.NewProvider(stockClient, goldClient, rateClient)
	currencyService := currency.NewService(marketData, currency.NewRateCache(common.FreshnessExchangeRate), logger)
	performanceService := performance.NewService(marketData, currencyService, storageManager, logger)

	logger.Info().
		Str("version", common.GetVersion()).
		Str("environment", config.Environment).
		Str("display_currency", config.DisplayCurrency).
		Msg("fincatch initialized")

	return &App{
		Config:             config,
		Logger:             logger,
		Storage:            storageManager,
		MarketData:         marketData,
		CurrencyService:    currencyService,
		PerformanceService: performanceService,
		StartupTime:        time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	if err := a.Storage.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to close storage")
	}
}
