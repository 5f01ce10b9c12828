package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/andy/boutiquebill/internal/export"
	"github.com/andy/boutiquebill/internal/handoff"
)

// enterPreview refreshes the document and message for the preview step
func (m *WizardModel) enterPreview() {
	inv := m.wiz.Invoice()
	m.doc.SetContent(export.RenderText(inv, m.wiz.Totals(), m.currencySymbol()))
	m.doc.GotoTop()
	m.message.SetValue(m.wiz.Message())
	m.message.Blur()
	m.editing = false
}

func (m *WizardModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEditing(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Back):
		m.wiz.Retreat()
		m.afterStepChange()
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.ToggleView):
		m.showMessage = !m.showMessage
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.EditMessage):
		m.showMessage = true
		m.editing = true
		return m, m.message.Focus()

	case key.Matches(keyMsg, DefaultKeyMap.ResetMsg):
		m.wiz.ResetMessage()
		m.message.SetValue(m.wiz.Message())
		m.setStatus("Message reset to the generated summary.", false)
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.Export):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.exportPDF()

	case key.Matches(keyMsg, DefaultKeyMap.Send):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.send()

	case key.Matches(keyMsg, DefaultKeyMap.Copy):
		return m, m.copyMessage()

	case key.Matches(keyMsg, DefaultKeyMap.NewInvoice):
		m.reset()
		m.setStatus("Started invoice "+m.wiz.Invoice().InvoiceNumber, false)
		return m, nil
	}

	if !m.showMessage {
		var cmd tea.Cmd
		m.doc, cmd = m.doc.Update(keyMsg)
		return m, cmd
	}
	return m, nil
}

// updateEditing routes keys to the message editor. esc keeps the edit.
func (m *WizardModel) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, DefaultKeyMap.Back) {
		m.editing = false
		m.message.Blur()
		if m.message.Value() != m.wiz.Message() {
			m.wiz.SetMessage(m.message.Value())
			m.setStatus("Message updated.", false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.message, cmd = m.message.Update(msg)
	return m, cmd
}

func (m *WizardModel) exportPDF() tea.Cmd {
	w := m.wiz
	opts := m.app.ExportOptions()
	return func() tea.Msg {
		path, err := export.ExportPDF(w, opts)
		return exportedMsg{path: path, err: err}
	}
}

func (m *WizardModel) send() tea.Cmd {
	opener := m.app.Opener
	baseURL := m.app.Config.Invoice.MessagingBaseURL
	phone := m.wiz.Invoice().CustomerPhone
	text := m.wiz.Message()
	return func() tea.Msg {
		link, err := handoff.Send(opener, baseURL, phone, text)
		return sentMsg{link: link, err: err}
	}
}

func (m *WizardModel) copyMessage() tea.Cmd {
	text := m.wiz.Message()
	return func() tea.Msg {
		return copiedMsg{err: handoff.CopyToClipboard(text)}
	}
}

// handleResult turns the outcome of a preview action into a notification
func (m *WizardModel) handleResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	log := m.app.Logger
	number := zap.String("invoice", m.wiz.Invoice().InvoiceNumber)

	switch msg := msg.(type) {
	case exportedMsg:
		m.busy = false
		if msg.err != nil {
			log.Error("export failed", number, zap.Error(msg.err))
			m.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
			return m, nil
		}
		log.Info("invoice exported", number, zap.String("path", msg.path))
		m.setStatus("Saved PDF to "+msg.path, false)

	case sentMsg:
		m.busy = false
		switch {
		case errors.Is(msg.err, handoff.ErrMissingPhone):
			m.setStatus("Add the customer's phone number before sending.", true)
		case msg.err != nil && msg.link != "":
			log.Warn("could not open messaging link", number, zap.Error(msg.err))
			m.setStatus("Could not open a browser. Open this link instead:\n  "+msg.link, true)
		case msg.err != nil:
			log.Error("send failed", number, zap.Error(msg.err))
			m.setStatus(fmt.Sprintf("Send failed: %v", msg.err), true)
		default:
			log.Info("message handed off", number)
			m.setStatus("Opened WhatsApp with the order summary.", false)
		}

	case copiedMsg:
		if msg.err != nil {
			log.Warn("clipboard copy failed", zap.Error(msg.err))
			m.setStatus(fmt.Sprintf("Could not copy: %v", msg.err), true)
			return m, nil
		}
		m.setStatus("Message copied to clipboard.", false)
	}
	return m, nil
}

func (m *WizardModel) viewPreview() string {
	var s string

	inv := m.wiz.Invoice()
	s += titleStyle.Render("Preview & Send") + subtitleStyle.Render(fmt.Sprintf("  %s for %s", inv.InvoiceNumber, truncateStr(inv.CustomerName, 32))) + "\n\n"

	if m.showMessage {
		label := "Message"
		if m.editing {
			label += " (editing, esc to finish)"
		}
		s += focusedStyle.Render("  "+label) + "\n"
		s += boxStyle.Render(m.message.View()) + "\n"
	} else {
		s += boxStyle.Render(m.doc.View()) + "\n"
	}

	s += m.viewTotals() + "\n"

	if m.busy {
		s += warningStyle.Render("  Working...") + "\n"
	}

	s += "\n"
	if m.editing {
		s += helpStyle.Render("  type to edit the message  esc: done")
	} else {
		s += helpStyle.Render("  p: export PDF  s: send on WhatsApp  c: copy message  e: edit message  r: reset message\n  tab: invoice/message  ↑/↓: scroll  n: new invoice  esc: back  q: quit")
	}
	return s
}
