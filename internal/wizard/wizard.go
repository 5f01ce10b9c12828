// Package wizard holds the step-by-step invoice form state.
//
// A Wizard owns one invoice record. Every mutation made through it is
// followed by Recompute, so totals and the summary message always match the
// current inputs. Advance only moves forward when the current step's fields
// validate; Retreat always moves back.
package wizard

import (
	"github.com/andy/boutiquebill/internal/billing"
	"github.com/andy/boutiquebill/internal/domain"
)

// Options configures derived output
type Options struct {
	CurrencySymbol string
}

type Wizard struct {
	step    Step
	invoice *domain.Invoice
	opts    Options

	totals  billing.Totals
	summary string
	edited  *string // message edited by hand at the preview step

	errs domain.ValidationErrors // from the last failed Advance
}

// New starts a wizard at the first step for inv
func New(inv *domain.Invoice, opts Options) *Wizard {
	w := &Wizard{invoice: inv, opts: opts}
	w.Recompute()
	return w
}

func (w *Wizard) Step() Step { return w.step }
func (w *Wizard) Invoice() *domain.Invoice { return w.invoice }
func (w *Wizard) Totals() billing.Totals { return w.totals }
func (w *Wizard) Errors() domain.ValidationErrors { return w.errs }

// IsFinal reports whether the wizard is on the preview step
func (w *Wizard) IsFinal() bool {
	return w.step == StepPreview
}

// Advance validates the current step and moves to the next one.
// On failure it returns domain.ValidationErrors and stays put.
// On the final step it does nothing.
func (w *Wizard) Advance() error {
	if w.IsFinal() {
		return nil
	}

	if errs := w.invoice.ValidateFields(w.step.Fields()...); len(errs) > 0 {
		w.errs = errs
		return errs
	}

	w.errs = nil
	w.step++
	if w.IsFinal() {
		w.edited = nil
		w.Recompute()
	}
	return nil
}

// Retreat moves to the previous step without validation. On the first step
// it does nothing. Leaving the preview drops any hand edit of the message.
func (w *Wizard) Retreat() {
	if w.step == StepShop {
		return
	}
	if w.IsFinal() {
		w.edited = nil
	}
	w.errs = nil
	w.step--
}

// Recompute refreshes totals and the summary message from the invoice
func (w *Wizard) Recompute() {
	w.totals = billing.Compute(w.invoice)
	w.summary = billing.BuildSummaryMessage(w.invoice, w.totals, billing.MessageOptions{
		CurrencySymbol: w.opts.CurrencySymbol,
	})
}

// Update applies fn to the invoice and recomputes derived values
func (w *Wizard) Update(fn func(inv *domain.Invoice)) {
	fn(w.invoice)
	w.Recompute()
}

// Summary returns the generated summary message
func (w *Wizard) Summary() string {
	return w.summary
}

// Message returns the text to send: the hand-edited message when there is
// one, the generated summary otherwise.
func (w *Wizard) Message() string {
	if w.edited != nil {
		return *w.edited
	}
	return w.summary
}

// SetMessage records a hand edit of the outgoing message
func (w *Wizard) SetMessage(text string) {
	w.edited = &text
}

// ResetMessage drops the hand edit and goes back to the generated summary
func (w *Wizard) ResetMessage() {
	w.edited = nil
}

// ValidateAll validates the fields of every step before the preview
func (w *Wizard) ValidateAll() error {
	var all domain.ValidationErrors
	for _, s := range Steps() {
		all = append(all, w.invoice.ValidateFields(s.Fields()...)...)
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

// JumpToPreview validates all steps and moves straight to the preview.
// Used when the whole invoice arrives at once, e.g. from a draft file.
func (w *Wizard) JumpToPreview() error {
	if err := w.ValidateAll(); err != nil {
		return err
	}
	w.errs = nil
	w.edited = nil
	w.step = StepPreview
	w.Recompute()
	return nil
}

// AddService appends a blank service and returns its index
func (w *Wizard) AddService() int {
	w.invoice.Services = append(w.invoice.Services, domain.NewService())
	w.Recompute()
	return len(w.invoice.Services) - 1
}

// RemoveService deletes the i-th service. The last remaining service cannot
// be removed.
func (w *Wizard) RemoveService(i int) bool {
	svcs := w.invoice.Services
	if len(svcs) <= 1 || i < 0 || i >= len(svcs) {
		return false
	}
	w.invoice.Services = append(svcs[:i:i], svcs[i+1:]...)
	w.Recompute()
	return true
}

// AddMeasurement appends a zero Length measurement to the si-th service
func (w *Wizard) AddMeasurement(si int) bool {
	if si < 0 || si >= len(w.invoice.Services) {
		return false
	}
	svc := w.invoice.Services[si]
	svc.Measurements = append(svc.Measurements, domain.NewMeasurement(domain.MeasurementLength))
	w.Recompute()
	return true
}

// RemoveMeasurement deletes a measurement from a service, keeping at least one
func (w *Wizard) RemoveMeasurement(si, mi int) bool {
	if si < 0 || si >= len(w.invoice.Services) {
		return false
	}
	svc := w.invoice.Services[si]
	if len(svc.Measurements) <= 1 || mi < 0 || mi >= len(svc.Measurements) {
		return false
	}
	svc.Measurements = append(svc.Measurements[:mi:mi], svc.Measurements[mi+1:]...)
	w.Recompute()
	return true
}
