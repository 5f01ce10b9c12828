package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/andy/boutiquebill/internal/app"
	"github.com/andy/boutiquebill/internal/billing"
	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/wizard"
)

// WizardModel walks through the invoice steps and ends on the preview
type WizardModel struct {
	app    *app.App
	wiz    *wizard.Wizard
	width  int
	height int

	// Form state
	fields     []formField
	fieldFocus int
	errs       domain.ValidationErrors
	localErrs  map[string]string // input problems the invoice cannot hold, e.g. a bad date
	showErrs   bool              // set after a failed advance; errors then refresh as you type

	// Preview state
	doc         viewport.Model
	message     textarea.Model
	showMessage bool
	editing     bool
	busy        bool

	status    string
	statusErr bool
}

// NewWizardModel starts a fresh invoice
func NewWizardModel(a *app.App) tea.Model {
	m := &WizardModel{
		app:       a,
		localErrs: make(map[string]string),
		doc:       viewport.New(72, 18),
		message:   textarea.New(),
	}
	m.message.SetWidth(70)
	m.message.SetHeight(12)
	m.message.ShowLineNumbers = false
	m.message.CharLimit = 0

	m.reset()
	return m
}

// reset discards the current invoice and starts over at the first step
func (m *WizardModel) reset() {
	m.wiz = m.app.NewWizard(time.Now())
	m.errs = nil
	m.localErrs = make(map[string]string)
	m.showErrs = false
	m.editing = false
	m.showMessage = false
	m.fieldFocus = 0
	m.buildFields()
}

// IsCapturingInput returns true while a form or the message editor is active
func (m *WizardModel) IsCapturingInput() bool {
	return !m.wiz.IsFinal() || m.editing
}

func (m *WizardModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case exportedMsg, sentMsg, copiedMsg:
		return m.handleResult(msg)
	}

	if m.wiz.IsFinal() {
		return m.updatePreview(msg)
	}
	return m.updateForm(msg)
}

func (m *WizardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if f := m.focused(); f != nil {
			var cmd tea.Cmd
			f.input, cmd = f.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.status = ""
	f := m.focused()

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.NextStep):
		return m, m.advance()

	case key.Matches(keyMsg, DefaultKeyMap.Back):
		m.commitImages()
		m.wiz.Retreat()
		m.afterStepChange()
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.Submit):
		if m.fieldFocus >= len(m.fields)-1 {
			return m, m.advance()
		}
		m.moveFocus(1)
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.NextField):
		m.moveFocus(1)
		return m, nil

	case key.Matches(keyMsg, DefaultKeyMap.PrevField):
		m.moveFocus(-1)
		return m, nil
	}

	if m.wiz.Step() == wizard.StepServices {
		if handled := m.updateServices(keyMsg); handled {
			return m, nil
		}
	}

	if f == nil {
		return m, nil
	}

	if f.kind == kindChoice {
		name := domain.MeasurementName(f.input.Value())
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.NextChoice):
			f.input.SetValue(string(name.Next()))
		case key.Matches(keyMsg, DefaultKeyMap.PrevChoice):
			f.input.SetValue(string(name.Prev()))
		default:
			return m, nil
		}
		m.applyField(m.fieldFocus)
		return m, nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(keyMsg)
	if f.kind != kindImage && f.input.Value() != before {
		m.applyField(m.fieldFocus)
	}
	return m, cmd
}

// updateServices handles the add/remove keys of the services step
func (m *WizardModel) updateServices(msg tea.KeyMsg) bool {
	f := m.focused()
	si, mi := 0, -1
	if f != nil {
		si, mi = f.service, f.measure
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.AddService):
		m.commitImages()
		i := m.wiz.AddService()
		m.buildFields()
		m.focusWhere(func(f formField) bool { return f.service == i })

	case key.Matches(msg, DefaultKeyMap.DelService):
		m.commitImages()
		if !m.wiz.RemoveService(si) {
			m.setStatus("At least one service is required.", true)
			return true
		}
		m.dropServiceErrors()
		m.buildFields()
		m.focusWhere(func(f formField) bool { return f.service == max(si-1, 0) })

	case key.Matches(msg, DefaultKeyMap.AddMeasure):
		m.commitImages()
		if !m.wiz.AddMeasurement(si) {
			return true
		}
		n := len(m.wiz.Invoice().Services[si].Measurements) - 1
		m.buildFields()
		m.focusWhere(func(f formField) bool { return f.service == si && f.measure == n })

	case key.Matches(msg, DefaultKeyMap.DelMeasure):
		if mi < 0 {
			m.setStatus("Move to a measurement to remove it.", true)
			return true
		}
		m.commitImages()
		if !m.wiz.RemoveMeasurement(si, mi) {
			m.setStatus("Each service keeps at least one measurement.", true)
			return true
		}
		m.dropServiceErrors()
		m.buildFields()
		m.focusWhere(func(f formField) bool { return f.service == si && f.measure == max(mi-1, 0) })

	default:
		return false
	}

	if m.showErrs {
		m.errs = m.wiz.Invoice().ValidateFields(m.wiz.Step().Fields()...)
	}
	return true
}

// dropServiceErrors forgets input errors keyed by service index, which
// shift when services or measurements are removed.
func (m *WizardModel) dropServiceErrors() {
	prefix := string(domain.FieldServices) + "."
	for path := range m.localErrs {
		if strings.HasPrefix(path, prefix) {
			delete(m.localErrs, path)
		}
	}
}

func (m *WizardModel) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	if f := m.focused(); f != nil && f.kind == kindImage {
		m.applyField(m.fieldFocus)
	}
	m.focusField((m.fieldFocus + delta + len(m.fields)) % len(m.fields))
}

// advance commits the form and asks the wizard to move on. Validation
// failures stay on this step and are shown inline.
func (m *WizardModel) advance() tea.Cmd {
	for i := range m.fields {
		m.applyField(i)
	}

	if n := m.stepLocalErrors(); n > 0 {
		m.showErrs = true
		m.errs = m.wiz.Invoice().ValidateFields(m.wiz.Step().Fields()...)
		m.focusFirstError()
		return nil
	}

	if err := m.wiz.Advance(); err != nil {
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			m.setStatus(err.Error(), true)
			return nil
		}
		m.showErrs = true
		m.errs = verrs
		m.focusFirstError()
		m.app.Logger.Debug("step blocked", zap.String("step", m.wiz.Step().String()), zap.Int("errors", len(verrs)))
		return nil
	}

	m.app.Logger.Debug("step advanced", zap.String("step", m.wiz.Step().String()))
	m.afterStepChange()
	return nil
}

func (m *WizardModel) stepLocalErrors() int {
	n := 0
	for _, f := range m.fields {
		if _, ok := m.localErrs[f.path]; ok {
			n++
		}
	}
	return n
}

func (m *WizardModel) focusFirstError() {
	m.focusWhere(func(f formField) bool { return m.fieldError(f.path) != "" })
}

// afterStepChange rebuilds the screen for the step the wizard is now on
func (m *WizardModel) afterStepChange() {
	m.errs = nil
	m.showErrs = false
	m.localErrs = make(map[string]string)
	m.fieldFocus = 0
	m.editing = false
	m.buildFields()
	if m.wiz.IsFinal() {
		m.enterPreview()
	}
}

func (m *WizardModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *WizardModel) resize() {
	if m.width == 0 {
		return
	}
	w := max(m.width-12, 30)
	h := max(m.height-20, 5)
	m.doc.Width = w
	m.doc.Height = h
	m.message.SetWidth(w)
	m.message.SetHeight(h)
}

func (m *WizardModel) View() string {
	var s string

	s += m.viewProgress() + "\n\n"

	if m.wiz.IsFinal() {
		s += m.viewPreview()
	} else {
		s += m.viewForm()
	}

	if m.status != "" {
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		s += "\n" + style.Render("  "+m.status) + "\n"
	}

	return s
}

func (m *WizardModel) viewProgress() string {
	current := m.wiz.Step()
	parts := make([]string, 0, wizard.StepCount)
	for _, step := range wizard.Steps() {
		label := fmt.Sprintf("%d. %s", int(step)+1, step)
		switch {
		case step < current:
			parts = append(parts, stepDoneStyle.Render("✓ "+label))
		case step == current:
			parts = append(parts, stepCurrentStyle.Render(label))
		default:
			parts = append(parts, stepTodoStyle.Render(label))
		}
	}
	return strings.Join(parts, subtitleStyle.Render(" › "))
}

func (m *WizardModel) viewForm() string {
	var s string

	s += titleStyle.Render(m.wiz.Step().String()) + "\n"
	if m.wiz.Step() == wizard.StepShop {
		s += subtitleStyle.Render("  Invoice "+m.wiz.Invoice().InvoiceNumber) + "\n"
	}
	s += "\n"

	start, end := m.visibleRange()
	if start > 0 {
		s += subtitleStyle.Render(fmt.Sprintf("  ↑ %d more", start)) + "\n"
	}
	for i := start; i < end; i++ {
		s += m.viewField(i)
	}
	if end < len(m.fields) {
		s += subtitleStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.fields)-end)) + "\n"
	}

	if m.showErrs {
		if fe, ok := m.errs.For(string(domain.FieldServices)); ok {
			s += errorStyle.Render("  "+fe.Message) + "\n"
		}
		if n := len(m.errs) + m.stepLocalErrors(); n > 0 {
			s += errorStyle.Render(fmt.Sprintf("  Please fix %d field(s) before continuing.", n)) + "\n"
		}
	}

	if step := m.wiz.Step(); step == wizard.StepServices || step == wizard.StepDetails {
		s += "\n" + m.viewTotals() + "\n"
	}

	s += "\n" + helpStyle.Render(m.formHelp())
	return s
}

func (m *WizardModel) viewField(i int) string {
	f := m.fields[i]

	indicator := "  "
	labelStyle := subtitleStyle
	if i == m.fieldFocus {
		indicator = "> "
		labelStyle = focusedStyle
	}

	indent := ""
	if f.service >= 0 && f.label != fmt.Sprintf("Service %d", f.service+1) {
		indent = "  "
	}

	input := f.input.View()
	if f.kind == kindChoice {
		input = fmt.Sprintf("◀ %s ▶", f.input.Value())
		if i == m.fieldFocus {
			input = focusedStyle.Render(input)
		}
	}

	s := fmt.Sprintf("%s%s%s\n  %s%s\n", indicator, indent, labelStyle.Render(f.label+":"), indent, input)
	if msg := m.fieldError(f.path); msg != "" {
		s += errorStyle.Render(fmt.Sprintf("  %s%s", indent, msg)) + "\n"
	}
	return s + "\n"
}

// visibleRange returns the window of fields that fits the terminal
func (m *WizardModel) visibleRange() (int, int) {
	n := len(m.fields)
	if m.height == 0 {
		return 0, n
	}
	visible := max((m.height-22)/3, 3)
	if n <= visible {
		return 0, n
	}
	start := max(m.fieldFocus-visible/2, 0)
	end := min(start+visible, n)
	start = max(end-visible, 0)
	return start, end
}

func (m *WizardModel) viewTotals() string {
	t := m.wiz.Totals()
	sym := m.currencySymbol()
	return totalsStyle.Render(fmt.Sprintf("  Total %s   Advance %s   Balance %s",
		billing.FormatAmount(sym, t.Total),
		billing.FormatAmount(sym, t.Advance),
		billing.FormatAmount(sym, t.Balance)))
}

func (m *WizardModel) currencySymbol() string {
	if sym := m.app.Config.Invoice.CurrencySymbol; sym != "" {
		return sym
	}
	return billing.DefaultCurrencySymbol
}

func (m *WizardModel) formHelp() string {
	help := "  tab/shift+tab: fields  enter: next  ctrl+s: next step"
	if m.wiz.Step() != wizard.StepShop {
		help += "  esc: back"
	}
	if m.wiz.Step() == wizard.StepServices {
		help += "\n  ctrl+n: add service  ctrl+d: remove service  ctrl+a: add measurement  ctrl+x: remove measurement  ←/→: measurement"
	}
	return help
}
