package service

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/andy/boutiquebill/internal/media"
)

// ShopDefaults prefill every new invoice
type ShopDefaults struct {
	Name         string
	Address      string
	LogoPath     string
	NumberPrefix string
}

// InvoiceService starts new invoices
type InvoiceService interface {
	// NewInvoice returns a fresh invoice with shop details and a generated number
	NewInvoice(now time.Time) *domain.Invoice

	// NextNumber generates an invoice number for the given day
	NextNumber(now time.Time) string
}

type invoiceService struct {
	defaults ShopDefaults
	newID    func() uuid.UUID
	logger   *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(defaults ShopDefaults, logger *zap.Logger) InvoiceService {
	return &invoiceService{
		defaults: defaults,
		newID:    uuid.New,
		logger:   logger,
	}
}

func (s *invoiceService) NewInvoice(now time.Time) *domain.Invoice {
	inv := domain.NewInvoice(s.NextNumber(now), now)
	inv.ShopName = s.defaults.Name
	inv.ShopAddress = s.defaults.Address

	// A broken logo path should not block invoicing
	logo, err := media.LoadOptional(s.defaults.LogoPath)
	if err != nil {
		s.logger.Warn("skipping configured shop logo", zap.String("path", s.defaults.LogoPath), zap.Error(err))
	}
	inv.ShopLogo = logo

	s.logger.Debug("new invoice", zap.String("number", inv.InvoiceNumber))
	return inv
}

// NextNumber returns <prefix>-<YYYYMMDD>-<6 hex chars>. The suffix comes from
// a random UUID, so numbers are unique without any stored counter.
func (s *invoiceService) NextNumber(now time.Time) string {
	prefix := strings.TrimSpace(s.defaults.NumberPrefix)
	if prefix == "" {
		prefix = "INV"
	}
	id := s.newID()
	suffix := strings.ToUpper(hex.EncodeToString(id[:3]))
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}
