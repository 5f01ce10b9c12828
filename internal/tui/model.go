package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/boutiquebill/internal/app"
	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/service"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenWizard
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "Log in"
	case ScreenWizard:
		return "New Invoice"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int
	user          *domain.User

	login  tea.Model
	wizard tea.Model

	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenLogin,
		login:         NewLoginModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkSession(), m.login.Init())
}

// checkSession looks for a user stored by an earlier session
func (m Model) checkSession() tea.Cmd {
	auth := m.app.AuthService
	return func() tea.Msg {
		user, err := auth.CurrentUser(context.Background())
		return sessionCheckMsg{user: user, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	auth := m.app.AuthService
	return func() tea.Msg {
		if err := auth.Logout(context.Background()); err != nil {
			return ErrorMsg{Err: fmt.Errorf("log out: %w", err)}
		}
		return LoggedOutMsg{}
	}
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, the global quit key is suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreen() tea.Model {
	if m.currentScreen == ScreenWizard {
		return m.wizard
	}
	return m.login
}

func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) showWizard(user *domain.User) tea.Cmd {
	m.user = user
	m.currentScreen = ScreenWizard
	m.wizard = NewWizardModel(m.app)
	cmds := []tea.Cmd{m.wizard.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.ForceQuit):
			return m, tea.Quit

		case key.Matches(msg, DefaultKeyMap.Logout) && m.currentScreen == ScreenWizard:
			return m, m.logout()

		case key.Matches(msg, DefaultKeyMap.Quit) && !m.activeScreenCapturingInput():
			return m, tea.Quit
		}

	case sessionCheckMsg:
		if msg.user != nil {
			return m, m.showWizard(msg.user)
		}
		if msg.err != nil && !errors.Is(msg.err, service.ErrNotLoggedIn) {
			m.err = msg.err
		}
		return m, nil

	case LoggedInMsg:
		return m, m.showWizard(msg.User)

	case LoggedOutMsg:
		m.user = nil
		m.wizard = nil
		m.currentScreen = ScreenLogin
		m.login = NewLoginModel(m.app)
		return m, m.login.Init()

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenLogin:
		if m.login != nil {
			m.login, cmd = m.login.Update(msg)
		}
	case ScreenWizard:
		if m.wizard != nil {
			m.wizard, cmd = m.wizard.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("BoutiqueBill - %s", m.currentScreen.String()))

	footerText := "[ctrl+c] Quit"
	if m.user != nil {
		footerText = fmt.Sprintf("%s  [ctrl+l] Log out  [ctrl+c] Quit", m.user.Email)
	}
	footer := footerStyle.Render(footerText)

	content := "Loading..."
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	innerWidth := max(m.width-6, 20) // account for border (2) + padding (4)
	dividerWidth := max(innerWidth-12, 10)
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
