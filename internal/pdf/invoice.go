// Package pdf renders invoice documents. The layout is fixed: a colored header
// band with the tenant's branding, an invoice-details box, a BILL TO block,
// a line-item table and a highlighted total on a single A4 page.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type LineItem struct {
	Name   string
	Amount float64
}

type InvoiceData struct {
	InvoiceNumber string
	Date          time.Time
	MemberName    string
	MemberPhone   string
	Amount        float64

	PlanType   string
	PlanAmount float64
	Services   []LineItem

	GymName      string
	GymEmail     string
	GymPhone     string
	GymAddress   string
	GymGSTNumber string
	// LogoPNG is optional; when empty the header text shifts left.
	LogoPNG      []byte
	PrimaryColor string
}

const (
	pageWidth  = 210.0
	leftMargin = 15.0
)

// RenderInvoice produces the single-page PDF for an invoice.
func RenderInvoice(data InvoiceData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	pr, pg, pb := parseHexColor(data.PrimaryColor)

	// Header band.
	doc.SetFillColor(pr, pg, pb)
	doc.Rect(0, 0, pageWidth, 50, "F")

	textX := leftMargin
	if len(data.LogoPNG) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data.LogoPNG))
		doc.ImageOptions("logo", leftMargin, 10, 30, 30, false, opts, 0, "")
		textX = 50
	}

	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(255, 255, 255)
	doc.Text(textX, 22, data.GymName)

	doc.SetFont("Helvetica", "", 9)
	y := 30.0
	doc.Text(textX, y, data.GymEmail)
	y += 6
	if data.GymPhone != "" {
		doc.Text(textX, y, "Phone: "+data.GymPhone)
		y += 6
	}
	if data.GymAddress != "" {
		doc.Text(textX, y, data.GymAddress)
		y += 6
	}
	if data.GymGSTNumber != "" {
		doc.Text(textX, y, "GST: "+data.GymGSTNumber)
	}

	doc.SetFont("Helvetica", "B", 26)
	doc.Text(pageWidth-15-doc.GetStringWidth("INVOICE"), 30, "INVOICE")

	// Invoice details box.
	doc.SetFillColor(245, 245, 245)
	doc.Rect(pageWidth-75, 55, 60, 25, "F")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(80, 80, 80)
	doc.Text(pageWidth-72, 62, "Invoice Number:")
	doc.SetFont("Helvetica", "B", 9)
	doc.SetTextColor(0, 0, 0)
	doc.Text(pageWidth-72, 68, data.InvoiceNumber)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(80, 80, 80)
	doc.Text(pageWidth-72, 74, "Date:")
	doc.SetFont("Helvetica", "B", 9)
	doc.SetTextColor(0, 0, 0)
	doc.Text(pageWidth-72, 80, data.Date.Format("Jan 2, 2006"))

	// Bill-to box.
	doc.SetFillColor(245, 245, 245)
	doc.Rect(leftMargin, 55, 100, 25, "F")

	doc.SetFont("Helvetica", "B", 10)
	doc.Text(18, 62, "BILL TO")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(18, 70, data.MemberName)
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(80, 80, 80)
	doc.Text(18, 76, "Phone: "+data.MemberPhone)

	// Line items: one row for the plan, one per service.
	type row struct{ desc, details, amount string }
	rows := []row{}
	if data.PlanType != "" && data.PlanAmount > 0 {
		rows = append(rows, row{"Membership Plan", data.PlanType, formatAmount(data.PlanAmount)})
	}
	for _, svc := range data.Services {
		rows = append(rows, row{"Service", svc.Name, formatAmount(svc.Amount)})
	}

	colWidths := []float64{55, 75, 50}
	tableY := 95.0

	doc.SetXY(leftMargin, tableY)
	doc.SetFillColor(pr, pg, pb)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	for i, head := range []string{"Description", "Details", "Amount"} {
		doc.CellFormat(colWidths[i], 10, head, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 9)
	for i, r := range rows {
		fill := i%2 == 1
		doc.SetFillColor(249, 250, 251)
		doc.SetX(leftMargin)
		doc.CellFormat(colWidths[0], 9, r.desc, "1", 0, "L", fill, 0, "")
		doc.CellFormat(colWidths[1], 9, r.details, "1", 0, "L", fill, 0, "")
		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(colWidths[2], 9, r.amount, "1", 0, "L", fill, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.Ln(-1)
	}

	// Total box.
	totalY := doc.GetY() + 10
	doc.SetFillColor(pr, pg, pb)
	doc.Rect(120, totalY, 75, 18, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(125, totalY+11, "TOTAL:")
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(160, totalY+11, formatAmount(data.Amount))

	// Footer.
	footerY := 297.0 - 30
	doc.SetDrawColor(220, 220, 220)
	doc.SetLineWidth(0.5)
	doc.Line(leftMargin, footerY, pageWidth-leftMargin, footerY)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 11)
	centerText(doc, footerY+8, "Thank you for your business!")
	doc.SetTextColor(120, 120, 120)
	doc.SetFont("Helvetica", "", 8)
	centerText(doc, footerY+14, "This is a computer-generated invoice")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func centerText(doc *gofpdf.Fpdf, y float64, text string) {
	doc.Text((pageWidth-doc.GetStringWidth(text))/2, y, text)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("Rs. %.2f", amount)
}

// parseHexColor accepts #RGB and #RRGGBB; anything else falls back to the
// default brand blue.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 59, 130, 246
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 59, 130, 246
	}

	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
