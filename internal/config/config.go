package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Local encrypted store settings
	Store StoreConfig `yaml:"store"`

	// Shop details prefilled into every new invoice
	Shop ShopConfig `yaml:"shop"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Login credentials
	Auth AuthConfig `yaml:"auth"`

	// Log settings
	Log LogConfig `yaml:"log"`
}

type StoreConfig struct {
	Path string `yaml:"path"` // Path to the SQLCipher database
}

type ShopConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Logo    string `yaml:"logo"` // Path to a PNG/JPEG/GIF logo
}

type InvoiceConfig struct {
	NumberPrefix     string `yaml:"number_prefix"`      // Invoice number prefix (e.g., "INV")
	OutputDir        string `yaml:"output_dir"`         // Directory for exported PDFs
	CurrencySymbol   string `yaml:"currency_symbol"`    // Used in previews and messages
	PDFCurrencyLabel string `yaml:"pdf_currency_label"` // PDF core fonts cannot draw every symbol
	MessagingBaseURL string `yaml:"messaging_base_url"` // Deep link base, phone is appended
}

type AuthConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"` // bcrypt; empty means the built-in demo password
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// Dir returns ~/.config/boutiquebill
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "boutiquebill")
	}
	return filepath.Join(homeDir, ".config", "boutiquebill")
}

// DefaultConfigPath returns ~/.config/boutiquebill/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := Dir()

	return &Config{
		Store: StoreConfig{
			Path: filepath.Join(dir, "boutiquebill.db"),
		},
		Shop: ShopConfig{
			Name: "BoutiqueBill",
		},
		Invoice: InvoiceConfig{
			NumberPrefix:     "INV",
			OutputDir:        filepath.Join(dir, "invoices"),
			CurrencySymbol:   "₹",
			PDFCurrencyLabel: "Rs.",
			MessagingBaseURL: "https://wa.me",
		},
		Auth: AuthConfig{
			Email: "user@example.com",
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "boutiquebill.log"),
			Level: "info",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Unset keys keep their defaults
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the store, log and invoice output directories
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Store.Path),
		filepath.Dir(c.Log.Path),
		c.Invoice.OutputDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
