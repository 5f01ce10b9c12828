package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/boutiquebill/internal/billing"
	"github.com/andy/boutiquebill/internal/domain"
)

const (
	pageMargin  = 15.0 // mm, every side
	lineHeight  = 6.0
	logoHeight  = 20.0
	imageHeight = 35.0
)

// WritePDF renders the invoice as an A4 portrait document. label replaces
// the currency symbol because the core PDF fonts are Latin-1 only.
func WritePDF(w io.Writer, inv *domain.Invoice, totals billing.Totals, label string) error {
	if label == "" {
		label = "Rs."
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, true)
	pdf.SetCreator("boutiquebill", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	money := func(v float64) string { return billing.FormatAmount(label+" ", v) }

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	// Header: logo, shop, and invoice title
	top := pdf.GetY()
	textX := pageMargin
	if inv.ShopLogo != nil {
		if err := placeImage(pdf, inv.ShopLogo, pageMargin, top, 0, logoHeight); err != nil {
			return fmt.Errorf("shop logo: %w", err)
		}
		textX = pageMargin + logoHeight + 5
	}

	pdf.SetXY(textX, top)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, tr(inv.ShopName), "", 1, "L", false, 0, "")
	pdf.SetX(textX)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(contentW-(textX-pageMargin)-50, 5, tr(inv.ShopAddress), "", "L", false)
	headerBottom := max(pdf.GetY(), top+logoHeight)

	pdf.SetXY(pageW-pageMargin-50, top)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(50, 9, "INVOICE", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(50, 5, tr(inv.InvoiceNumber), "", 2, "R", false, 0, "")

	pdf.SetY(headerBottom + 6)
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(pageMargin, pdf.GetY(), pageW-pageMargin, pdf.GetY())
	pdf.Ln(4)

	// Customer and dates
	half := contentW / 2
	rowY := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, lineHeight, "Bill To", "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(half, lineHeight, tr(inv.CustomerName), "", 2, "L", false, 0, "")
	pdf.CellFormat(half, lineHeight, tr(inv.CustomerPhone), "", 2, "L", false, 0, "")

	pdf.SetXY(pageMargin+half, rowY)
	pdf.CellFormat(half, lineHeight, "Invoice Date: "+billing.FormatLongDate(inv.InvoiceDate), "", 2, "R", false, 0, "")
	pdf.CellFormat(half, lineHeight, "Delivery Date: "+billing.FormatLongDate(inv.DeliveryDate), "", 2, "R", false, 0, "")
	pdf.SetXY(pageMargin, rowY+3*lineHeight+4)

	// Services table
	numW, priceW := 10.0, 35.0
	nameW := contentW - numW - priceW

	pdf.SetFillColor(240, 235, 245)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(numW, 8, "#", "B", 0, "C", true, 0, "")
	pdf.CellFormat(nameW, 8, "Service", "B", 0, "L", true, 0, "")
	pdf.CellFormat(priceW, 8, "Price", "B", 1, "R", true, 0, "")

	for i, svc := range inv.Services {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(numW, lineHeight+1, fmt.Sprintf("%d", i+1), "", 0, "C", false, 0, "")
		pdf.CellFormat(nameW, lineHeight+1, tr(svc.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(priceW, lineHeight+1, money(domain.FiniteAmount(svc.Price)), "", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		if desc := svc.DescriptionText(); desc != "" {
			pdf.SetX(pageMargin + numW)
			pdf.MultiCell(nameW, 5, tr(desc), "", "L", false)
		}
		if m := billing.MeasurementLine(svc); m != "" {
			pdf.SetX(pageMargin + numW)
			pdf.MultiCell(nameW, 5, tr("Measurements (in): "+m), "", "L", false)
		}
		if svc.Image != nil {
			pdf.Ln(1)
			if err := placeImage(pdf, svc.Image, pageMargin+numW, -1, 0, imageHeight); err != nil {
				return fmt.Errorf("service %d image: %w", i+1, err)
			}
		}
		pdf.Line(pageMargin, pdf.GetY()+1, pageW-pageMargin, pdf.GetY()+1)
		pdf.Ln(3)
	}

	// Totals
	pdf.Ln(2)
	labelW := contentW - priceW
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, lineHeight, "Total Amount", "", 0, "R", false, 0, "")
	pdf.CellFormat(priceW, lineHeight, money(totals.Total), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, lineHeight, "Advance Paid", "", 0, "R", false, 0, "")
	pdf.CellFormat(priceW, lineHeight, money(totals.Advance), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelW, lineHeight+1, "Balance Due", "T", 0, "R", false, 0, "")
	pdf.CellFormat(priceW, lineHeight+1, money(totals.Balance), "T", 1, "R", false, 0, "")

	if notes := strings.TrimSpace(inv.NotesText()); notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(notes), "", "L", false)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, lineHeight, "Thank you for your business!", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// placeImage draws img with the given height at (x, y). A negative y flows
// the image at the current position.
func placeImage(pdf *gofpdf.Fpdf, img *domain.ImageRef, x, y, w, h float64) error {
	imageType, ok := imageTypes[img.MIMEType]
	if !ok {
		return fmt.Errorf("%s: unsupported image type %s", img.Name(), img.MIMEType)
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	flow := y < 0
	if flow {
		y = 0
	}
	pdf.ImageOptions(img.Path, x, y, w, h, flow, opts, 0, "")
	return pdf.Error()
}

var imageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/gif":  "GIF",
}
