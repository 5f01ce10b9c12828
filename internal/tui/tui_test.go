package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/boutiquebill/internal/app"
	"github.com/andy/boutiquebill/internal/config"
	"github.com/andy/boutiquebill/internal/crypto"
	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/service"
	"github.com/andy/boutiquebill/internal/wizard"
)

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) Open(url string) error {
	f.opened = append(f.opened, url)
	return nil
}

func newTestApp(t *testing.T) (*app.App, *fakeOpener) {
	t.Helper()
	t.Setenv(crypto.EnvKey, "test-key")

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(dir, "bb.db")
	cfg.Log.Path = filepath.Join(dir, "bb.log")
	cfg.Invoice.OutputDir = filepath.Join(dir, "invoices")
	cfg.Shop.Name = "Silk Thread"
	cfg.Shop.Address = "12 MG Road, Pune"

	a, err := app.NewWithConfig(context.Background(), cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	opener := &fakeOpener{}
	a.Opener = opener
	return a, opener
}

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

func pressKey(m tea.Model, k tea.KeyType) tea.Model {
	m, _ = press(m, k)
	return m
}

// toStep advances a fresh wizard with valid input up to the given step
func toStep(t *testing.T, m *WizardModel, target wizard.Step) {
	t.Helper()
	if m.wiz.Step() == wizard.StepShop && target > wizard.StepShop {
		pressKey(m, tea.KeyCtrlS)
	}
	if m.wiz.Step() == wizard.StepCustomer && target > wizard.StepCustomer {
		typeText(m, "Anjali Sharma")
		pressKey(m, tea.KeyTab)
		typeText(m, "919876543210")
		pressKey(m, tea.KeyCtrlS)
	}
	if m.wiz.Step() == wizard.StepServices && target > wizard.StepServices {
		typeText(m, "Blouse Stitching")
		pressKey(m, tea.KeyTab)
		pressKey(m, tea.KeyTab)
		typeText(m, "1500")
		pressKey(m, tea.KeyCtrlS)
	}
	if m.wiz.Step() == wizard.StepDetails && target > wizard.StepDetails {
		typeText(m, "500")
		pressKey(m, tea.KeyCtrlS)
	}
	require.Equal(t, target, m.wiz.Step())
}

func TestLoginFlow(t *testing.T) {
	a, _ := newTestApp(t)

	var root tea.Model = New(a)
	root, _ = root.Update(sessionCheckMsg{err: service.ErrNotLoggedIn})
	root, _ = root.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	assert.Equal(t, ScreenLogin, root.(Model).currentScreen)

	// q is typed into the form, not treated as quit
	root = typeText(root, "q")
	assert.Equal(t, ScreenLogin, root.(Model).currentScreen)
	root = pressKey(root, tea.KeyBackspace)

	root = typeText(root, "user@example.com")
	root = pressKey(root, tea.KeyEnter)
	root = typeText(root, "wrong")
	root, cmd := press(root, tea.KeyEnter)
	require.NotNil(t, cmd)
	root, _ = root.Update(cmd())
	assert.Contains(t, root.View(), "Invalid email or password.")

	root = typeText(root, "password")
	root, cmd = press(root, tea.KeyEnter)
	require.NotNil(t, cmd)
	root, cmd = root.Update(cmd())
	require.NotNil(t, cmd)
	root, _ = root.Update(cmd())

	model := root.(Model)
	assert.Equal(t, ScreenWizard, model.currentScreen)
	require.NotNil(t, model.user)
	assert.Contains(t, root.View(), "user@example.com")

	user, err := a.AuthService.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	root, cmd = press(root, tea.KeyCtrlL)
	require.NotNil(t, cmd)
	root, _ = root.Update(cmd())
	assert.Equal(t, ScreenLogin, root.(Model).currentScreen)
}

func TestSessionRestore(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := a.AuthService.Login(context.Background(), "user@example.com", "password")
	require.NoError(t, err)

	root := New(a)
	msg := root.checkSession()()
	next, _ := root.Update(msg)
	assert.Equal(t, ScreenWizard, next.(Model).currentScreen)
}

func TestWizard_BlocksInvalidStep(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewWizardModel(a).(*WizardModel)

	toStep(t, m, wizard.StepCustomer)

	pressKey(m, tea.KeyCtrlS)
	assert.Equal(t, wizard.StepCustomer, m.wiz.Step())
	view := m.View()
	assert.Contains(t, view, "Customer name is required.")
	assert.Contains(t, view, "A valid phone number is required.")

	// errors refresh while typing once shown
	typeText(m, "Anjali")
	assert.NotContains(t, m.View(), "Customer name is required.")

	pressKey(m, tea.KeyEsc)
	assert.Equal(t, wizard.StepShop, m.wiz.Step())
	assert.Empty(t, m.errs)
}

func TestWizard_InvalidDate(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewWizardModel(a).(*WizardModel)
	toStep(t, m, wizard.StepCustomer)

	typeText(m, "Anjali Sharma")
	pressKey(m, tea.KeyTab)
	typeText(m, "919876543210")
	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyCtrlU)
	typeText(m, "25/10/2026")

	pressKey(m, tea.KeyCtrlS)
	assert.Equal(t, wizard.StepCustomer, m.wiz.Step())
	assert.Contains(t, m.View(), "Use the format YYYY-MM-DD.")

	pressKey(m, tea.KeyCtrlU)
	typeText(m, time.Now().Format(dateLayout))
	pressKey(m, tea.KeyCtrlS)
	assert.Equal(t, wizard.StepServices, m.wiz.Step())
}

func TestWizard_ServicesAndMeasurements(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewWizardModel(a).(*WizardModel)
	toStep(t, m, wizard.StepServices)
	inv := m.wiz.Invoice()

	pressKey(m, tea.KeyCtrlD)
	assert.Len(t, inv.Services, 1)
	assert.Contains(t, m.status, "At least one service")

	pressKey(m, tea.KeyCtrlN)
	require.Len(t, inv.Services, 2)
	assert.Equal(t, 1, m.focused().service)
	typeText(m, "Fall & Pico")
	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyTab)
	typeText(m, "200")
	assert.Equal(t, 200.0, m.wiz.Totals().Total)

	pressKey(m, tea.KeyCtrlD)
	require.Len(t, inv.Services, 1)
	assert.Equal(t, 0.0, m.wiz.Totals().Total)

	pressKey(m, tea.KeyCtrlA)
	require.Len(t, inv.Services[0].Measurements, 2)
	f := m.focused()
	require.Equal(t, kindChoice, f.kind)

	pressKey(m, tea.KeyRight)
	assert.Equal(t, domain.MeasurementChest, inv.Services[0].Measurements[1].Name)
	pressKey(m, tea.KeyLeft)
	pressKey(m, tea.KeyLeft)
	assert.Equal(t, domain.MeasurementNeckBack, inv.Services[0].Measurements[1].Name)

	pressKey(m, tea.KeyTab)
	typeText(m, "34")
	assert.Contains(t, m.wiz.Summary(), "Neck Back: 34")

	pressKey(m, tea.KeyCtrlX)
	assert.Len(t, inv.Services[0].Measurements, 1)
	pressKey(m, tea.KeyCtrlX)
	assert.Len(t, inv.Services[0].Measurements, 1)
}

func TestWizard_NegativePriceBlocks(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewWizardModel(a).(*WizardModel)
	toStep(t, m, wizard.StepServices)

	typeText(m, "Kurta")
	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyTab)
	typeText(m, "-50")
	pressKey(m, tea.KeyCtrlS)

	assert.Equal(t, wizard.StepServices, m.wiz.Step())
	assert.Contains(t, m.View(), "Price must be a non-negative number.")
}

func TestPreview_EditAndSend(t *testing.T) {
	a, opener := newTestApp(t)
	m := NewWizardModel(a).(*WizardModel)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	toStep(t, m, wizard.StepPreview)

	assert.False(t, m.IsCapturingInput())
	view := m.View()
	assert.Contains(t, view, "Preview & Send")
	assert.Contains(t, view, "Balance ₹1000.00")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.True(t, m.IsCapturingInput())
	typeText(m, " See you soon!")
	pressKey(m, tea.KeyEsc)
	assert.False(t, m.editing)
	assert.True(t, strings.HasSuffix(m.wiz.Message(), "See you soon!"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	require.NotNil(t, cmd)
	m.Update(cmd())
	require.Len(t, opener.opened, 1)
	assert.True(t, strings.HasPrefix(opener.opened[0], "https://wa.me/919876543210?text=Hello%20Anjali%20Sharma"))
	assert.True(t, strings.HasSuffix(opener.opened[0], "See%20you%20soon%21"))
	assert.Contains(t, m.status, "Opened WhatsApp")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, m.wiz.Summary(), m.wiz.Message())

	// leaving the preview drops edits
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	typeText(m, "!!")
	pressKey(m, tea.KeyEsc)
	pressKey(m, tea.KeyEsc)
	assert.Equal(t, wizard.StepDetails, m.wiz.Step())
	pressKey(m, tea.KeyCtrlS)
	assert.Equal(t, m.wiz.Summary(), m.wiz.Message())
}

func TestPreview_Export(t *testing.T) {
	a, _ := newTestApp(t)
	m := NewWizardModel(a).(*WizardModel)
	toStep(t, m, wizard.StepPreview)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	msg := cmd()
	require.IsType(t, exportedMsg{}, msg)
	require.NoError(t, msg.(exportedMsg).err)
	m.Update(msg)
	assert.False(t, m.busy)
	assert.Contains(t, m.status, "Saved PDF to")
	assert.FileExists(t, msg.(exportedMsg).path)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, wizard.StepShop, m.wiz.Step())
	assert.Contains(t, m.status, "Started invoice")
}
