// Package draft reads and writes invoice drafts as YAML files, so an invoice
// can be prepared in an editor and processed by the non-interactive commands.
package draft

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/media"
)

// DateLayout is the date format used in draft files
const DateLayout = "2006-01-02"

type Draft struct {
	Shop          Shop      `yaml:"shop"`
	InvoiceNumber string    `yaml:"invoice_number,omitempty"`
	InvoiceDate   string    `yaml:"invoice_date,omitempty"`
	DeliveryDate  string    `yaml:"delivery_date,omitempty"`
	Customer      Customer  `yaml:"customer"`
	Services      []Service `yaml:"services"`
	Advance       float64   `yaml:"advance"`
	Notes         string    `yaml:"notes,omitempty"`
}

type Shop struct {
	Name    string `yaml:"name,omitempty"`
	Address string `yaml:"address,omitempty"`
	Logo    string `yaml:"logo,omitempty"`
}

type Customer struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
}

type Service struct {
	Name         string        `yaml:"name"`
	Description  string        `yaml:"description,omitempty"`
	Price        float64       `yaml:"price"`
	Image        string        `yaml:"image,omitempty"`
	Measurements []Measurement `yaml:"measurements,omitempty"`
}

type Measurement struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// Load reads a draft file. Relative image paths are resolved against the
// draft's directory.
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	d.resolvePaths(filepath.Dir(path))
	return d, nil
}

// Parse decodes draft YAML
func Parse(data []byte) (*Draft, error) {
	d := &Draft{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return d, nil
}

// Marshal encodes the draft as YAML
func (d *Draft) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d *Draft) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "~") {
			return p
		}
		return filepath.Join(dir, p)
	}
	d.Shop.Logo = resolve(d.Shop.Logo)
	for i := range d.Services {
		d.Services[i].Image = resolve(d.Services[i].Image)
	}
}

// Apply copies the draft onto inv. Blank shop fields, invoice number and
// dates keep inv's values; services replace inv's services when the draft
// lists any.
func (d *Draft) Apply(inv *domain.Invoice) error {
	if d.Shop.Name != "" {
		inv.ShopName = d.Shop.Name
	}
	if d.Shop.Address != "" {
		inv.ShopAddress = d.Shop.Address
	}
	if d.Shop.Logo != "" {
		logo, err := media.Load(d.Shop.Logo)
		if err != nil {
			return fmt.Errorf("shop logo: %w", err)
		}
		inv.ShopLogo = logo
	}
	if d.InvoiceNumber != "" {
		inv.InvoiceNumber = d.InvoiceNumber
	}

	var err error
	if inv.InvoiceDate, err = parseDate(d.InvoiceDate, inv.InvoiceDate); err != nil {
		return fmt.Errorf("invoice_date: %w", err)
	}
	if inv.DeliveryDate, err = parseDate(d.DeliveryDate, inv.DeliveryDate); err != nil {
		return fmt.Errorf("delivery_date: %w", err)
	}

	inv.CustomerName = d.Customer.Name
	inv.CustomerPhone = d.Customer.Phone
	inv.Advance = domain.FiniteAmount(d.Advance)
	inv.Notes = domain.OptionalString(d.Notes)

	if len(d.Services) == 0 {
		return nil
	}
	services := make([]*domain.Service, 0, len(d.Services))
	for i, s := range d.Services {
		svc := &domain.Service{
			Name:        s.Name,
			Description: domain.OptionalString(s.Description),
			Price:       domain.FiniteAmount(s.Price),
		}
		for _, m := range s.Measurements {
			svc.Measurements = append(svc.Measurements, &domain.Measurement{
				Name:  domain.MeasurementName(m.Name),
				Value: domain.FiniteAmount(m.Value),
			})
		}
		if s.Image != "" {
			img, err := media.Load(s.Image)
			if err != nil {
				return fmt.Errorf("services[%d] image: %w", i, err)
			}
			svc.Image = img
		}
		services = append(services, svc)
	}
	inv.Services = services
	return nil
}

// FromInvoice converts an invoice into its draft form
func FromInvoice(inv *domain.Invoice) *Draft {
	d := &Draft{
		Shop: Shop{
			Name:    inv.ShopName,
			Address: inv.ShopAddress,
		},
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   formatDate(inv.InvoiceDate),
		DeliveryDate:  formatDate(inv.DeliveryDate),
		Customer: Customer{
			Name:  inv.CustomerName,
			Phone: inv.CustomerPhone,
		},
		Advance: inv.Advance,
		Notes:   inv.NotesText(),
	}
	if inv.ShopLogo != nil {
		d.Shop.Logo = inv.ShopLogo.Path
	}

	for _, s := range inv.Services {
		ds := Service{
			Name:        s.Name,
			Description: s.DescriptionText(),
			Price:       domain.FiniteAmount(s.Price),
		}
		if s.Image != nil {
			ds.Image = s.Image.Path
		}
		for _, m := range s.Measurements {
			ds.Measurements = append(ds.Measurements, Measurement{Name: string(m.Name), Value: m.Value})
		}
		d.Services = append(d.Services, ds)
	}
	return d
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
