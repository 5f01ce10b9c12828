package billing

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/andy/boutiquebill/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func services(prices ...float64) []*domain.Service {
	out := make([]*domain.Service, len(prices))
	for i, p := range prices {
		out[i] = &domain.Service{Name: "svc", Price: p}
	}
	return out
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 0.0, ComputeTotal(nil))
	assert.Equal(t, 0.0, ComputeTotal(services()))
	assert.Equal(t, 1750.0, ComputeTotal(services(1500, 250)))
	assert.Equal(t, 300.0, ComputeTotal(services(100, math.NaN(), 200, math.Inf(1))))
}

func TestComputeBalance(t *testing.T) {
	assert.Equal(t, 1000.0, ComputeBalance(1500, 500))
	assert.Equal(t, 0.0, ComputeBalance(500, 500))
	assert.Equal(t, -200.0, ComputeBalance(300, 500), "overpayment is not clamped")
	assert.Equal(t, 300.0, ComputeBalance(300, math.NaN()))
}

func TestCompute(t *testing.T) {
	inv := &domain.Invoice{Services: services(1000, 500), Advance: 500}
	want := Totals{Total: 1500, Advance: 500, Balance: 1000}
	if diff := cmp.Diff(want, Compute(inv)); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹1000.00", FormatAmount("₹", 1000))
	assert.Equal(t, "-₹200.00", FormatAmount("₹", -200))
	assert.Equal(t, "₹0.00", FormatAmount("₹", math.Copysign(0, -1)))
	assert.Equal(t, "Rs.12.50", FormatAmount("Rs.", 12.5))
}

func TestFormatLongDate(t *testing.T) {
	tests := map[int]string{
		1:  "October 1st, 2026",
		2:  "October 2nd, 2026",
		3:  "October 3rd, 2026",
		4:  "October 4th, 2026",
		11: "October 11th, 2026",
		12: "October 12th, 2026",
		13: "October 13th, 2026",
		21: "October 21st, 2026",
		22: "October 22nd, 2026",
		31: "October 31st, 2026",
	}
	for day, want := range tests {
		assert.Equal(t, want, FormatLongDate(time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC)))
	}
	assert.Equal(t, "", FormatLongDate(time.Time{}))
}

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ShopName:      "Silk Thread",
		InvoiceNumber: "INV-20261018-ABC123",
		CustomerName:  "Anjali",
		DeliveryDate:  time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
		Advance:       500,
		Services: []*domain.Service{
			{
				Name:  "Blouse Stitching",
				Price: 1500,
				Measurements: []*domain.Measurement{
					{Name: domain.MeasurementLength, Value: 0},
					{Name: domain.MeasurementChest, Value: 34},
					{Name: domain.MeasurementWaist, Value: 30.5},
				},
			},
		},
	}
}

func TestBuildSummaryMessage(t *testing.T) {
	inv := sampleInvoice()
	msg := BuildSummaryMessage(inv, Compute(inv), MessageOptions{})

	want := `Hello Anjali,

Here are your order details from Silk Thread:
Invoice No: INV-20261018-ABC123

Services:
1. Blouse Stitching - ₹1500.00
   Measurements: Chest: 34, Waist: 30.5

Total Amount: ₹1500.00
Advance Paid: ₹500.00
Balance Due: ₹1000.00

Your order will be ready for delivery on October 25th, 2026.

Thank you,
Silk Thread`
	if diff := cmp.Diff(want, msg); diff != "" {
		t.Fatalf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSummaryMessage_OmitsZeroMeasurements(t *testing.T) {
	inv := sampleInvoice()
	msg := BuildSummaryMessage(inv, Compute(inv), MessageOptions{})
	assert.NotContains(t, msg, "Length")

	inv.Services[0].Measurements = []*domain.Measurement{{Name: domain.MeasurementHip, Value: 0}}
	msg = BuildSummaryMessage(inv, Compute(inv), MessageOptions{})
	assert.NotContains(t, msg, "Measurements:")
}

func TestBuildSummaryMessage_Deterministic(t *testing.T) {
	inv := sampleInvoice()
	first := BuildSummaryMessage(inv, Compute(inv), MessageOptions{CurrencySymbol: "Rs."})
	second := BuildSummaryMessage(inv, Compute(inv), MessageOptions{CurrencySymbol: "Rs."})
	assert.Equal(t, first, second)
	assert.True(t, strings.Contains(first, "Balance Due: Rs.1000.00"))
}
