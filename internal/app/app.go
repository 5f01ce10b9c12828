package app

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/andy/boutiquebill/internal/config"
	"github.com/andy/boutiquebill/internal/crypto"
	"github.com/andy/boutiquebill/internal/db"
	"github.com/andy/boutiquebill/internal/export"
	"github.com/andy/boutiquebill/internal/handoff"
	"github.com/andy/boutiquebill/internal/logging"
	"github.com/andy/boutiquebill/internal/repository"
	"github.com/andy/boutiquebill/internal/service"
	"github.com/andy/boutiquebill/internal/wizard"
)

// ErrNoConfigPath is returned by SaveConfig when the App was built without a config file
var ErrNoConfigPath = errors.New("no config file path")

// Options are set from command line flags
type Options struct {
	ConfigPath string // empty means config.DefaultConfigPath()
	Verbose    bool
}

// App is the dependency injection container for all application components
type App struct {
	Config     *config.Config
	ConfigPath string // file the config was loaded from; empty when built from a Config value
	DB         *db.DB
	Logger     *zap.Logger

	// Repositories
	StateRepo repository.StateRepository

	// Services
	AuthService    service.AuthService
	InvoiceService service.InvoiceService

	// External handoff
	Opener handoff.Opener
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting encryption key from keyring
// 3. Opening the local store
// 4. Running migrations
// 5. Creating repositories and services
func New(ctx context.Context, opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewWithConfig(ctx, cfg, opts.Verbose)
	if err != nil {
		return nil, err
	}
	a.ConfigPath = path
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config, verbose bool) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	// startup errors past this point are logged and flushed before returning
	fail := func(err error) (*App, error) {
		logger.Error("startup failed", zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}

	keyring := crypto.NewKeyring()

	password, err := keyring.GetKey()
	if err != nil {
		// No key exists, prompt user to set one
		logger.Info("no store key found, prompting", zap.Error(err))
		fmt.Println("Setting up local store encryption for the first time...")
		password, err = promptForPassword()
		if err != nil {
			return fail(fmt.Errorf("failed to set password: %w", err))
		}

		if err := keyring.SetKey(password); err != nil {
			return fail(fmt.Errorf("failed to store encryption key: %w", err))
		}
	}

	database, err := db.Open(cfg.Store.Path, password)
	if err != nil {
		return fail(fmt.Errorf("failed to open store: %w", err))
	}

	if err := database.RunMigrations(ctx); err != nil {
		database.Close()
		return fail(fmt.Errorf("failed to run migrations: %w", err))
	}

	stateRepo := repository.NewStateRepo(database)

	authService := service.NewAuthService(stateRepo, cfg.Auth.Email, cfg.Auth.PasswordHash, logger.Named("auth"))
	invoiceService := service.NewInvoiceService(service.ShopDefaults{
		Name:         cfg.Shop.Name,
		Address:      cfg.Shop.Address,
		LogoPath:     cfg.Shop.Logo,
		NumberPrefix: cfg.Invoice.NumberPrefix,
	}, logger.Named("invoice"))

	logger.Debug("app initialized", zap.String("store", cfg.Store.Path))

	return &App{
		Config:         cfg,
		DB:             database,
		Logger:         logger,
		StateRepo:      stateRepo,
		AuthService:    authService,
		InvoiceService: invoiceService,
		Opener:         handoff.BrowserOpener{},
	}, nil
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// NewWizard starts a wizard on a fresh invoice
func (a *App) NewWizard(now time.Time) *wizard.Wizard {
	return wizard.New(a.InvoiceService.NewInvoice(now), a.WizardOptions())
}

// WizardOptions returns the wizard settings from config
func (a *App) WizardOptions() wizard.Options {
	return wizard.Options{CurrencySymbol: a.Config.Invoice.CurrencySymbol}
}

// ExportOptions returns the PDF export settings from config
func (a *App) ExportOptions() export.Options {
	return export.Options{
		OutputDir:     a.Config.Invoice.OutputDir,
		CurrencyLabel: a.Config.Invoice.PDFCurrencyLabel,
	}
}

// promptForPassword prompts user for a new store password (first run)
// This should be called when keyring has no stored key
func promptForPassword() (string, error) {
	fmt.Println()
	fmt.Println("Your login state is kept in an encrypted local store.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for store encryption: ")

	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Store encryption configured successfully")
	fmt.Println()

	return string(password), nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	if a.ConfigPath == "" {
		return ErrNoConfigPath
	}
	return a.Config.Save(a.ConfigPath)
}
