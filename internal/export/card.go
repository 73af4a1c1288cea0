// Package export renders shareable artifacts from product records.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/foodlens/foodlensgo/internal/models"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// SummaryCard renders a one-page A6 PDF for a record: name, brand, health
// score, ingredient list, and a QR code that resolves back to the product.
func SummaryCard(record *models.ProductRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("no record to export")
	}

	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 8)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(0, 7, record.Name, "", "L", false)

	if record.Brand != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, record.Brand, "", 1, "L", false, 0, "")
	}

	if record.HealthScore != nil {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Health Score: %d / 100", *record.HealthScore), "", 1, "L", false, 0, "")
	}

	if names := record.IngredientNames(); len(names) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Ingredients", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 4, strings.Join(names, ", "), "", "L", false)
	}

	if names := record.AllergenNames(); len(names) > 0 {
		pdf.Ln(1)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 5, "Allergens", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 4, strings.Join(names, ", "), "", "L", false)
	}

	// QR content prefers the retail barcode so other apps can resolve it
	qrContent := record.Barcode
	if qrContent == "" {
		qrContent = record.ID
	}

	qrPng, err := qrcode.Encode(qrContent, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("qr", imgOptions, bytes.NewReader(qrPng))

	pageW, pageH := pdf.GetPageSize()
	qrSize := 28.0
	pdf.ImageOptions("qr", pageW-qrSize-8, pageH-qrSize-8, qrSize, qrSize, false, imgOptions, 0, "")

	pdf.SetXY(8, pageH-12)
	pdf.SetFontSize(6)
	pdf.CellFormat(pageW-qrSize-20, 4, qrContent, "", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
