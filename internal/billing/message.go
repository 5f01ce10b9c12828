package billing

import (
	"fmt"
	"strings"

	"github.com/andy/boutiquebill/internal/domain"
)

// MessageOptions controls currency rendering in the summary message
type MessageOptions struct {
	CurrencySymbol string
}

func (o MessageOptions) symbol() string {
	if o.CurrencySymbol == "" {
		return DefaultCurrencySymbol
	}
	return o.CurrencySymbol
}

// BuildSummaryMessage renders the order summary sent to the customer.
// The output depends only on its arguments. Measurements with value 0 are left out.
func BuildSummaryMessage(inv *domain.Invoice, totals Totals, opts MessageOptions) string {
	sym := opts.symbol()
	var b strings.Builder

	if name := strings.TrimSpace(inv.CustomerName); name != "" {
		fmt.Fprintf(&b, "Hello %s,\n\n", name)
	} else {
		b.WriteString("Hello,\n\n")
	}

	fmt.Fprintf(&b, "Here are your order details from %s:\n", inv.ShopName)
	if inv.InvoiceNumber != "" {
		fmt.Fprintf(&b, "Invoice No: %s\n", inv.InvoiceNumber)
	}

	b.WriteString("\nServices:\n")
	for i, svc := range inv.Services {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, svc.Name, FormatAmount(sym, domain.FiniteAmount(svc.Price)))
		if line := MeasurementLine(svc); line != "" {
			fmt.Fprintf(&b, "   Measurements: %s\n", line)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total Amount: %s\n", FormatAmount(sym, totals.Total))
	fmt.Fprintf(&b, "Advance Paid: %s\n", FormatAmount(sym, totals.Advance))
	fmt.Fprintf(&b, "Balance Due: %s\n", FormatAmount(sym, totals.Balance))

	if !inv.DeliveryDate.IsZero() {
		fmt.Fprintf(&b, "\nYour order will be ready for delivery on %s.\n", FormatLongDate(inv.DeliveryDate))
	}

	fmt.Fprintf(&b, "\nThank you,\n%s", inv.ShopName)
	return b.String()
}
