package draft

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy/boutiquebill/internal/domain"
)

const sampleYAML = `
shop:
  name: Silk Thread
  address: 12 MG Road, Pune
customer:
  name: Anjali Sharma
  phone: "+91 98765 43210"
delivery_date: 2026-10-25
services:
  - name: Blouse Stitching
    price: 1500
    measurements:
      - name: Chest
        value: 34
      - name: Waist
        value: 30.5
  - name: Fall & Pico
    description: Saree edge finishing
    price: 200
advance: 500
notes: Deliver in a gift box
`

var today = time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)

func TestApply(t *testing.T) {
	d, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	inv := domain.NewInvoice("INV-20261018-ABC123", today)
	require.NoError(t, d.Apply(inv))

	assert.Equal(t, "Silk Thread", inv.ShopName)
	assert.Equal(t, "INV-20261018-ABC123", inv.InvoiceNumber, "blank number keeps the generated one")
	assert.Equal(t, today, inv.InvoiceDate)
	assert.Equal(t, time.Date(2026, 10, 25, 0, 0, 0, 0, time.Local), inv.DeliveryDate)
	assert.Equal(t, "+91 98765 43210", inv.CustomerPhone)
	assert.Equal(t, 500.0, inv.Advance)
	assert.Equal(t, "Deliver in a gift box", inv.NotesText())

	require.Len(t, inv.Services, 2)
	want := []*domain.Measurement{
		{Name: domain.MeasurementChest, Value: 34},
		{Name: domain.MeasurementWaist, Value: 30.5},
	}
	if diff := cmp.Diff(want, inv.Services[0].Measurements); diff != "" {
		t.Errorf("measurements mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Saree edge finishing", inv.Services[1].DescriptionText())

	assert.Empty(t, inv.ValidateFields(
		domain.FieldShopName, domain.FieldShopAddress, domain.FieldCustomerName,
		domain.FieldCustomerPhone, domain.FieldDeliveryDate, domain.FieldServices,
	))
}

func TestApply_NoServicesKeepsDefault(t *testing.T) {
	d, err := Parse([]byte("customer:\n  name: Meera\n  phone: \"9876543210\"\n"))
	require.NoError(t, err)

	inv := domain.NewInvoice("N1", today)
	require.NoError(t, d.Apply(inv))
	assert.Len(t, inv.Services, 1)
	assert.Nil(t, inv.Notes)
}

func TestApply_NonFiniteAmountsBecomeZero(t *testing.T) {
	d, err := Parse([]byte(`
services:
  - name: Blouse
    price: .inf
    measurements:
      - name: Chest
        value: .nan
  - name: Kurta
    price: 200
advance: .nan
`))
	require.NoError(t, err)

	inv := domain.NewInvoice("N1", today)
	require.NoError(t, d.Apply(inv))

	assert.Equal(t, 0.0, inv.Services[0].Price)
	assert.Equal(t, 0.0, inv.Services[0].Measurements[0].Value)
	assert.Equal(t, 200.0, inv.Services[1].Price)
	assert.Equal(t, 0.0, inv.Advance)
	assert.Empty(t, inv.ValidateFields(domain.FieldServices, domain.FieldAdvance))
}

func TestApply_BadDate(t *testing.T) {
	d, err := Parse([]byte("delivery_date: 25/10/2026\n"))
	require.NoError(t, err)

	err = d.Apply(domain.NewInvoice("N1", today))
	assert.ErrorContains(t, err, "delivery_date")
}

func TestLoad_ResolvesRelativeImages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.yaml")
	data := "services:\n  - name: Kurta\n    price: 800\n    image: photos/ref.txt\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photos", "ref.txt"), d.Services[0].Image)

	// the file does not exist, so applying fails on the image
	err = d.Apply(domain.NewInvoice("N1", today))
	assert.ErrorContains(t, err, "services[0] image")
}

func TestFromInvoice_RoundTrip(t *testing.T) {
	d, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	inv := domain.NewInvoice("INV-1", today)
	require.NoError(t, d.Apply(inv))

	data, err := FromInvoice(inv).Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	inv2 := domain.NewInvoice("other", today.AddDate(0, 0, 3))
	require.NoError(t, again.Apply(inv2))

	if diff := cmp.Diff(inv, inv2); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
