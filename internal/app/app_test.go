package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/boutiquebill/internal/config"
	"github.com/andy/boutiquebill/internal/crypto"
	"github.com/andy/boutiquebill/internal/service"
	"github.com/andy/boutiquebill/internal/wizard"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(dir, "bb.db")
	cfg.Log.Path = filepath.Join(dir, "bb.log")
	cfg.Invoice.OutputDir = filepath.Join(dir, "invoices")
	cfg.Shop.Name = "Silk Thread"
	cfg.Shop.Address = "12 MG Road, Pune"
	return cfg
}

func TestNewWithConfig(t *testing.T) {
	t.Setenv(crypto.EnvKey, "test-key")
	ctx := context.Background()

	a, err := NewWithConfig(ctx, testConfig(t), false)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.AuthService.CurrentUser(ctx)
	assert.ErrorIs(t, err, service.ErrNotLoggedIn)

	_, err = a.AuthService.Login(ctx, "user@example.com", "password")
	require.NoError(t, err)

	user, err := a.AuthService.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestNewWizard_UsesConfig(t *testing.T) {
	t.Setenv(crypto.EnvKey, "test-key")

	cfg := testConfig(t)
	cfg.Invoice.CurrencySymbol = "$"
	a, err := NewWithConfig(context.Background(), cfg, true)
	require.NoError(t, err)
	defer a.Close()

	w := a.NewWizard(time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local))
	assert.Equal(t, wizard.StepShop, w.Step())
	assert.Equal(t, "Silk Thread", w.Invoice().ShopName)
	assert.Contains(t, w.Invoice().InvoiceNumber, "INV-20261018-")
	assert.Contains(t, w.Summary(), "Total Amount: $0.00")

	assert.Equal(t, cfg.Invoice.OutputDir, a.ExportOptions().OutputDir)
	assert.Equal(t, "Rs.", a.ExportOptions().CurrencyLabel)
}

func TestNewWithConfig_WrongStoreKey(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	t.Setenv(crypto.EnvKey, "first-key")
	a, err := NewWithConfig(ctx, cfg, false)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	t.Setenv(crypto.EnvKey, "second-key")
	_, err = NewWithConfig(ctx, cfg, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open store")

	logged, err := os.ReadFile(cfg.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "startup failed")
}

func TestConfigPath(t *testing.T) {
	t.Setenv(crypto.EnvKey, "test-key")
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := NewWithConfig(ctx, cfg, false)
	require.NoError(t, err)
	assert.Empty(t, a.ConfigPath)
	assert.ErrorIs(t, a.SaveConfig(), ErrNoConfigPath)
	require.NoError(t, a.Close())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	a, err = New(ctx, Options{ConfigPath: path})
	require.NoError(t, err)
	defer a.Close()
	assert.Equal(t, path, a.ConfigPath)

	a.Config.Shop.Name = "Silk & Lace"
	require.NoError(t, a.SaveConfig())
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Silk & Lace", loaded.Shop.Name)
}
