// Package billing derives invoice totals and the customer summary message.
package billing

import "github.com/andy/boutiquebill/internal/domain"

// Totals are the values derived from an invoice's services and advance
type Totals struct {
	Total   float64
	Advance float64
	Balance float64
}

// ComputeTotal sums service prices. Non-finite prices count as 0.
func ComputeTotal(services []*domain.Service) float64 {
	total := 0.0
	for _, svc := range services {
		if svc == nil {
			continue
		}
		total += domain.FiniteAmount(svc.Price)
	}
	return total
}

// ComputeBalance returns total minus advance. The result is not clamped:
// an overpaid invoice has a negative balance.
func ComputeBalance(total, advance float64) float64 {
	return domain.FiniteAmount(total) - domain.FiniteAmount(advance)
}

// Compute derives all totals for inv
func Compute(inv *domain.Invoice) Totals {
	total := ComputeTotal(inv.Services)
	advance := domain.FiniteAmount(inv.Advance)
	return Totals{
		Total:   total,
		Advance: advance,
		Balance: ComputeBalance(total, advance),
	}
}
