package domain

import (
	"strings"
	"time"
)

type Invoice struct {
	ShopName      string
	ShopAddress   string
	ShopLogo      *ImageRef // nil when no logo attached
	InvoiceNumber string
	InvoiceDate   time.Time
	DeliveryDate  time.Time
	CustomerName  string
	CustomerPhone string
	Services      []*Service
	Advance       float64
	Notes         *string
}

type Service struct {
	Name         string
	Description  *string
	Price        float64
	Measurements []*Measurement
	Image        *ImageRef
}

// NewInvoice creates an invoice with the defaults a fresh wizard starts from:
// both dates set to today and a single blank service.
func NewInvoice(invoiceNumber string, now time.Time) *Invoice {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return &Invoice{
		InvoiceNumber: invoiceNumber,
		InvoiceDate:   today,
		DeliveryDate:  today,
		Services:      []*Service{NewService()},
	}
}

// NewService returns a blank service carrying one zero Length measurement
func NewService() *Service {
	return &Service{
		Measurements: []*Measurement{NewMeasurement(MeasurementLength)},
	}
}

// VisibleMeasurements returns the measurements worth printing (value > 0)
func (s *Service) VisibleMeasurements() []*Measurement {
	out := make([]*Measurement, 0, len(s.Measurements))
	for _, m := range s.Measurements {
		if m.Value > 0 {
			out = append(out, m)
		}
	}
	return out
}

// DescriptionText returns the description or "" when absent
func (s *Service) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// NotesText returns the notes or "" when absent
func (i *Invoice) NotesText() string {
	if i.Notes == nil {
		return ""
	}
	return *i.Notes
}

// OptionalString turns blank input into nil
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
