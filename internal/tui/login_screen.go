package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andy/boutiquebill/internal/app"
	"github.com/andy/boutiquebill/internal/service"
)

// login form field indices
const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

// LoginModel asks for the shop credential
type LoginModel struct {
	app        *app.App
	fields     []textinput.Model
	fieldFocus int
	submitting bool
	err        error
}

type loginResultMsg struct {
	msg LoggedInMsg
	err error
}

// NewLoginModel creates a new login screen model
func NewLoginModel(a *app.App) tea.Model {
	m := &LoginModel{app: a}

	m.fields = make([]textinput.Model, loginFieldCount)

	m.fields[loginFieldEmail] = textinput.New()
	m.fields[loginFieldEmail].Placeholder = "user@example.com"
	m.fields[loginFieldEmail].CharLimit = 100
	m.fields[loginFieldEmail].Width = 40

	m.fields[loginFieldPassword] = textinput.New()
	m.fields[loginFieldPassword].Placeholder = "password"
	m.fields[loginFieldPassword].CharLimit = 100
	m.fields[loginFieldPassword].Width = 40
	m.fields[loginFieldPassword].EchoMode = textinput.EchoPassword
	m.fields[loginFieldPassword].EchoCharacter = '•'

	m.fieldFocus = loginFieldEmail
	m.fields[loginFieldEmail].Focus()
	return m
}

// IsCapturingInput is always true: the whole screen is a form
func (m *LoginModel) IsCapturingInput() bool {
	return true
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) submit() tea.Cmd {
	email := m.fields[loginFieldEmail].Value()
	password := m.fields[loginFieldPassword].Value()

	return func() tea.Msg {
		user, err := m.app.AuthService.Login(context.Background(), email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{msg: LoggedInMsg{User: user}}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.fields[loginFieldPassword].SetValue("")
			return m, nil
		}
		m.err = nil
		return m, func() tea.Msg { return msg.msg }

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.NextField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % loginFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.PrevField):
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + loginFieldCount) % loginFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case key.Matches(msg, DefaultKeyMap.Submit):
			if m.fieldFocus < loginFieldCount-1 {
				m.fields[m.fieldFocus].Blur()
				m.fieldFocus++
				return m, m.fields[m.fieldFocus].Focus()
			}
			m.submitting = true
			m.err = nil
			return m, m.submit()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *LoginModel) View() string {
	var s string

	s += titleStyle.Render("Welcome to BoutiqueBill") + "\n"
	s += subtitleStyle.Render("  Log in to create invoices for your customers.") + "\n\n"

	labels := []string{"Email:", "Password:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = focusedStyle
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	switch {
	case m.submitting:
		s += subtitleStyle.Render("  Logging in...") + "\n\n"
	case errors.Is(m.err, service.ErrInvalidCredentials):
		s += errorStyle.Render("  Invalid email or password.") + "\n\n"
	case m.err != nil:
		s += errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: next field  enter: log in  ctrl+c: quit")
	return s
}
