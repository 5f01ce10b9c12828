package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/media"
	"github.com/andy/boutiquebill/internal/wizard"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindAmount
	kindDate
	kindChoice
	kindImage
)

// formField is one input bound to a location in the invoice
type formField struct {
	label   string
	path    string // validation path, e.g. "services.0.price"
	kind    fieldKind
	service int // -1 outside the services step
	measure int // -1 unless the field belongs to a measurement
	input   textinput.Model
	apply   func(inv *domain.Invoice, value string) error
}

func newInput(value, placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = width
	ti.SetValue(value)
	return ti
}

func textField(label, path, value, placeholder string, set func(*domain.Invoice, string)) formField {
	return formField{
		label:   label,
		path:    path,
		kind:    kindText,
		service: -1,
		measure: -1,
		input:   newInput(value, placeholder, 50),
		apply: func(inv *domain.Invoice, v string) error {
			set(inv, v)
			return nil
		},
	}
}

func amountField(label, path string, value float64, set func(*domain.Invoice, float64)) formField {
	return formField{
		label:   label,
		path:    path,
		kind:    kindAmount,
		service: -1,
		measure: -1,
		input:   newInput(formatInputAmount(value), "0", 15),
		apply: func(inv *domain.Invoice, v string) error {
			set(inv, domain.ParseAmount(v))
			return nil
		},
	}
}

func dateField(label, path string, value time.Time, set func(*domain.Invoice, time.Time)) formField {
	return formField{
		label:   label,
		path:    path,
		kind:    kindDate,
		service: -1,
		measure: -1,
		input:   newInput(formatInputDate(value), dateLayout, 15),
		apply: func(inv *domain.Invoice, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				set(inv, time.Time{})
				return nil
			}
			t, err := time.ParseInLocation(dateLayout, v, time.Local)
			if err != nil {
				set(inv, time.Time{})
				return errors.New("Use the format YYYY-MM-DD.")
			}
			set(inv, t)
			return nil
		},
	}
}

func choiceField(label, path string, value domain.MeasurementName, set func(*domain.Invoice, domain.MeasurementName)) formField {
	return formField{
		label:   label,
		path:    path,
		kind:    kindChoice,
		service: -1,
		measure: -1,
		input:   newInput(string(value), "", 20),
		apply: func(inv *domain.Invoice, v string) error {
			set(inv, domain.MeasurementName(v))
			return nil
		},
	}
}

// imageField is applied on commit only: loading the file on every
// keystroke would report errors for half-typed paths.
func imageField(label, path string, ref *domain.ImageRef, set func(*domain.Invoice, *domain.ImageRef)) formField {
	value := ""
	if ref != nil {
		value = ref.Path
	}
	return formField{
		label:   label,
		path:    path,
		kind:    kindImage,
		service: -1,
		measure: -1,
		input:   newInput(value, "optional: path to a PNG/JPEG/GIF", 50),
		apply: func(inv *domain.Invoice, v string) error {
			img, err := media.LoadOptional(v)
			if err != nil {
				set(inv, nil)
				if errors.Is(err, media.ErrUnsupportedImage) {
					return errors.New("Only PNG, JPEG or GIF images can be attached.")
				}
				return err
			}
			set(inv, img)
			return nil
		},
	}
}

// buildFields creates the inputs for the current step from the invoice
func (m *WizardModel) buildFields() {
	inv := m.wiz.Invoice()

	switch m.wiz.Step() {
	case wizard.StepShop:
		m.fields = []formField{
			textField("Shop name", string(domain.FieldShopName), inv.ShopName, "Your boutique's name",
				func(inv *domain.Invoice, v string) { inv.ShopName = v }),
			textField("Shop address", string(domain.FieldShopAddress), inv.ShopAddress, "Street, city",
				func(inv *domain.Invoice, v string) { inv.ShopAddress = v }),
			textField("Invoice number", string(domain.FieldInvoiceNumber), inv.InvoiceNumber, "INV-001",
				func(inv *domain.Invoice, v string) { inv.InvoiceNumber = v }),
			imageField("Shop logo", string(domain.FieldShopLogo), inv.ShopLogo,
				func(inv *domain.Invoice, ref *domain.ImageRef) { inv.ShopLogo = ref }),
		}

	case wizard.StepCustomer:
		m.fields = []formField{
			textField("Customer name", string(domain.FieldCustomerName), inv.CustomerName, "Full name",
				func(inv *domain.Invoice, v string) { inv.CustomerName = v }),
			textField("Phone (with country code)", string(domain.FieldCustomerPhone), inv.CustomerPhone, "919876543210",
				func(inv *domain.Invoice, v string) { inv.CustomerPhone = v }),
			dateField("Invoice date", string(domain.FieldInvoiceDate), inv.InvoiceDate,
				func(inv *domain.Invoice, t time.Time) { inv.InvoiceDate = t }),
			dateField("Delivery date", string(domain.FieldDeliveryDate), inv.DeliveryDate,
				func(inv *domain.Invoice, t time.Time) { inv.DeliveryDate = t }),
		}

	case wizard.StepServices:
		m.fields = nil
		for si, svc := range inv.Services {
			group := []formField{
				textField(fmt.Sprintf("Service %d", si+1), domain.ServicePath(si, "name"), svc.Name, "e.g. Blouse Stitching",
					func(inv *domain.Invoice, v string) { inv.Services[si].Name = v }),
				textField("Description", domain.ServicePath(si, "description"), svc.DescriptionText(), "optional",
					func(inv *domain.Invoice, v string) { inv.Services[si].Description = domain.OptionalString(v) }),
				amountField("Price", domain.ServicePath(si, "price"), svc.Price,
					func(inv *domain.Invoice, v float64) { inv.Services[si].Price = v }),
				imageField("Reference image", domain.ServicePath(si, "image"), svc.Image,
					func(inv *domain.Invoice, ref *domain.ImageRef) { inv.Services[si].Image = ref }),
			}
			for i := range group {
				group[i].service = si
			}
			m.fields = append(m.fields, group...)

			for mi, ms := range svc.Measurements {
				name := choiceField(fmt.Sprintf("Measurement %d", mi+1), domain.MeasurementPath(si, mi, "name"), ms.Name,
					func(inv *domain.Invoice, n domain.MeasurementName) { inv.Services[si].Measurements[mi].Name = n })
				value := amountField("Inches", domain.MeasurementPath(si, mi, "value"), ms.Value,
					func(inv *domain.Invoice, v float64) { inv.Services[si].Measurements[mi].Value = v })
				for _, f := range []*formField{&name, &value} {
					f.service, f.measure = si, mi
				}
				m.fields = append(m.fields, name, value)
			}
		}

	case wizard.StepDetails:
		m.fields = []formField{
			amountField("Advance paid", string(domain.FieldAdvance), inv.Advance,
				func(inv *domain.Invoice, v float64) { inv.Advance = v }),
			textField("Notes", string(domain.FieldNotes), inv.NotesText(), "optional: fabric, special instructions",
				func(inv *domain.Invoice, v string) { inv.Notes = domain.OptionalString(v) }),
		}

	default:
		m.fields = nil
	}

	m.focusField(min(m.fieldFocus, max(len(m.fields)-1, 0)))
}

// focusField moves focus to field i
func (m *WizardModel) focusField(i int) {
	for j := range m.fields {
		m.fields[j].input.Blur()
	}
	m.fieldFocus = i
	if i >= 0 && i < len(m.fields) {
		m.fields[i].input.Focus()
	}
}

// focusWhere focuses the first field matching pred
func (m *WizardModel) focusWhere(pred func(f formField) bool) {
	for i, f := range m.fields {
		if pred(f) {
			m.focusField(i)
			return
		}
	}
}

func (m *WizardModel) focused() *formField {
	if m.fieldFocus < 0 || m.fieldFocus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.fieldFocus]
}

// applyField writes field i into the invoice through the wizard, so totals
// and the message are recomputed.
func (m *WizardModel) applyField(i int) {
	f := m.fields[i]
	var err error
	m.wiz.Update(func(inv *domain.Invoice) {
		err = f.apply(inv, f.input.Value())
	})
	if err != nil {
		m.localErrs[f.path] = err.Error()
	} else {
		delete(m.localErrs, f.path)
	}
	if m.showErrs {
		m.errs = m.wiz.Invoice().ValidateFields(m.wiz.Step().Fields()...)
	}
}

// commitImages applies image fields, which are not applied while typing
func (m *WizardModel) commitImages() {
	for i, f := range m.fields {
		if f.kind == kindImage {
			m.applyField(i)
		}
	}
}

// fieldError returns the message to show under the field at path
func (m *WizardModel) fieldError(path string) string {
	if msg, ok := m.localErrs[path]; ok {
		return msg
	}
	if fe, ok := m.errs.For(path); ok {
		return fe.Message
	}
	return ""
}
