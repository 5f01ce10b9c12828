package export

import (
	"fmt"
	"strings"

	"github.com/andy/boutiquebill/internal/billing"
	"github.com/andy/boutiquebill/internal/domain"
)

const textWidth = 56

// RenderText lays out the invoice as a plain-text document
func RenderText(inv *domain.Invoice, totals billing.Totals, symbol string) string {
	var b strings.Builder

	sep := strings.Repeat("=", textWidth)
	line := strings.Repeat("-", textWidth)

	b.WriteString(inv.ShopName + "\n")
	if inv.ShopAddress != "" {
		b.WriteString(inv.ShopAddress + "\n")
	}
	if inv.ShopLogo != nil {
		b.WriteString(fmt.Sprintf("[logo: %s]\n", inv.ShopLogo.Name()))
	}
	b.WriteString(sep + "\n")
	b.WriteString("INVOICE\n")
	b.WriteString(fmt.Sprintf("Invoice #:  %s\n", inv.InvoiceNumber))
	b.WriteString(fmt.Sprintf("Date:       %s\n", billing.FormatLongDate(inv.InvoiceDate)))
	b.WriteString(fmt.Sprintf("Delivery:   %s\n", billing.FormatLongDate(inv.DeliveryDate)))

	b.WriteString("\nBill To:\n")
	b.WriteString(fmt.Sprintf("  %s\n", inv.CustomerName))
	b.WriteString(fmt.Sprintf("  %s\n", inv.CustomerPhone))

	b.WriteString("\n" + line + "\n")
	b.WriteString(fmt.Sprintf("%-3s %-38s %13s\n", "#", "Service", "Price"))
	b.WriteString(line + "\n")

	for i, svc := range inv.Services {
		b.WriteString(fmt.Sprintf("%-3d %-38s %13s\n", i+1, truncate(svc.Name, 38), billing.FormatAmount(symbol, domain.FiniteAmount(svc.Price))))
		if desc := svc.DescriptionText(); desc != "" {
			b.WriteString(fmt.Sprintf("    %s\n", desc))
		}
		if m := billing.MeasurementLine(svc); m != "" {
			b.WriteString(fmt.Sprintf("    Measurements: %s\n", m))
		}
		if svc.Image != nil {
			b.WriteString(fmt.Sprintf("    Reference: %s\n", svc.Image.Name()))
		}
	}

	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%42s %13s\n", "Total Amount", billing.FormatAmount(symbol, totals.Total)))
	b.WriteString(fmt.Sprintf("%42s %13s\n", "Advance Paid", billing.FormatAmount(symbol, totals.Advance)))
	b.WriteString(fmt.Sprintf("%42s %13s\n", "Balance Due", billing.FormatAmount(symbol, totals.Balance)))
	b.WriteString(sep + "\n")

	if notes := strings.TrimSpace(inv.NotesText()); notes != "" {
		b.WriteString("\nNotes:\n")
		b.WriteString(notes + "\n")
	}

	b.WriteString("\nThank you for your business!\n")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
