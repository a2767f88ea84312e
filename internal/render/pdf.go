// Package render lays out the assembled invoice as a one-page A4 PDF.
// Colors and fonts arrive in an explicit Theme at construction time;
// nothing here recomputes amounts, it only draws what the assembler and
// config provide.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/username/invoice-maker/internal/config"
	"github.com/username/invoice-maker/internal/invoice"
	"go.uber.org/zap"
)

// Theme carries the visual configuration for one renderer instance
type Theme struct {
	Light     config.RGB
	Dark      config.RGB
	SansFont  string
	SerifFont string
	FontDir   string
}

// ThemeFromConfig builds a Theme from a parsed invoice document
func ThemeFromConfig(cfg *config.Config) Theme {
	return Theme{
		Light:     cfg.Colors.ColorLight,
		Dark:      cfg.Colors.ColorDark,
		SansFont:  cfg.AppConfig.SansFont,
		SerifFont: cfg.AppConfig.SerifFont,
		FontDir:   cfg.AppConfig.FontDir,
	}
}

// Renderer draws invoices as PDF files
type Renderer struct {
	theme  Theme
	logger *zap.Logger

	// now is stubbed in tests to pin the footer timestamp
	now func() time.Time
}

// New creates a renderer with the given theme
func New(theme Theme, logger *zap.Logger) *Renderer {
	return &Renderer{
		theme:  theme,
		logger: logger,
		now:    time.Now,
	}
}

// InvoiceDate formats the billing date for display, e.g. "January 31, 2024"
func InvoiceDate(billingDate time.Time) string {
	return billingDate.Format("January 2, 2006")
}

// InvoiceNumber derives the invoice number from the billing date,
// e.g. "Jan312024"
func InvoiceNumber(billingDate time.Time) string {
	return billingDate.Format("Jan22006")
}

// OutputFileName is the deterministic PDF name for a billing date
func OutputFileName(billingDate time.Time) string {
	return "invoice_" + InvoiceNumber(billingDate) + ".pdf"
}

// Render writes the invoice PDF into the configured output directory and
// returns the output path. The directory is created if absent.
func (r *Renderer) Render(cfg *config.Config, inv *invoice.Invoice) (string, error) {
	if err := os.MkdirAll(cfg.AppConfig.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating output dir %s: %v",
			invoice.ErrIO, cfg.AppConfig.OutputDir, err)
	}

	doc := &document{
		Fpdf:   gofpdf.New("P", "mm", "A4", r.theme.FontDir),
		theme:  r.theme,
		cfg:    cfg,
		inv:    inv,
		nowUTC: r.now().UTC(),
	}

	// pin the document creation date to the same clock as the footer so
	// identical inputs yield identical bytes
	doc.SetCreationDate(doc.nowUTC)
	doc.SetHeaderFunc(doc.header)
	doc.SetFooterFunc(doc.footer)
	doc.AddPage()

	doc.billTo()
	doc.billTable()
	doc.workTable()
	doc.lineItemsTable()

	outPath := filepath.Join(cfg.AppConfig.OutputDir, OutputFileName(inv.BillingDate))
	if err := doc.OutputFileAndClose(outPath); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", invoice.ErrIO, outPath, err)
	}

	r.logger.Info("Invoice rendered",
		zap.String("path", outPath),
		zap.String("billdate", inv.BillingDate.Format("2006-01-02")),
		zap.String("total", invoice.FormatCents(inv.Total)))

	return outPath, nil
}

// document wraps gofpdf with the themed cell helpers the invoice tables
// are built from
type document struct {
	*gofpdf.Fpdf
	theme  Theme
	cfg    *config.Config
	inv    *invoice.Invoice
	nowUTC time.Time
}

func (d *document) darkText()  { d.SetTextColor(d.theme.Dark.R, d.theme.Dark.G, d.theme.Dark.B) }
func (d *document) lightText() { d.SetTextColor(d.theme.Light.R, d.theme.Light.G, d.theme.Light.B) }
func (d *document) blackText() { d.SetTextColor(0, 0, 0) }
func (d *document) whiteText() { d.SetTextColor(255, 255, 255) }

func (d *document) darkDrawColor() { d.SetDrawColor(d.theme.Dark.R, d.theme.Dark.G, d.theme.Dark.B) }
func (d *document) lightFillColor() {
	d.SetFillColor(d.theme.Light.R, d.theme.Light.G, d.theme.Light.B)
}

// contentCell writes a filled framed cell with right-aligned text, the
// default for table content
func (d *document) contentCell(width, height float64, text string) {
	d.CellFormat(width, height, text, "1", 0, "R", true, 0, "")
}

// contentCellLeft writes a filled framed cell with left-aligned text
func (d *document) contentCellLeft(width, height float64, text string) {
	d.CellFormat(width, height, text, "1", 0, "L", true, 0, "")
}

// headerCell writes a filled framed cell with centered text
func (d *document) headerCell(width, height float64, text string) {
	d.CellFormat(width, height, text, "1", 0, "C", true, 0, "")
}

func (d *document) blankCell(width, height float64) {
	d.CellFormat(width, height, "", "", 0, "", false, 0, "")
}

// header draws the logo, biller identity, invoice number and date, and a
// divider separating them from the body
func (d *document) header() {
	d.SetFont(d.theme.SansFont, "BI", 28)

	if d.cfg.Business.ImageFile != "" {
		d.Image(d.cfg.Business.ImageFile, 0, 10, 100, 0, false, "", 0, "")
	}

	d.SetXY(140, 30)
	d.darkText()
	d.Cell(40, 0, "Invoice")

	d.SetXY(140, 40)
	d.darkText()
	d.SetFont(d.theme.SerifFont, "", 12)
	d.Cell(20, 0, "Date:")
	d.lightText()
	d.Cell(20, 0, InvoiceDate(d.inv.BillingDate))

	d.SetXY(140, 45)
	d.darkText()
	d.Cell(20, 0, "Invoice #:")
	d.lightText()
	d.Cell(20, 0, InvoiceNumber(d.inv.BillingDate))

	d.SetXY(8, 40)
	d.darkText()
	d.SetFont(d.theme.SerifFont, "B", 14)
	d.Cell(40, 0, d.cfg.Business.Person)
	d.SetFont(d.theme.SerifFont, "", 10)
	d.SetXY(8, 45)
	d.Cell(40, 0, d.cfg.Business.Address)

	d.Ln(10)
	d.darkDrawColor()
	d.Line(8, 50, 200, 50)
}

// footer draws a divider, the business name, and the generation timestamp
func (d *document) footer() {
	d.Ln(10)
	d.darkDrawColor()
	d.Line(8, 275, 200, 275)

	d.SetXY(8.0, 280)
	d.darkText()
	d.SetFont(d.theme.SerifFont, "", 10)
	d.Cell(143, 0, d.cfg.Business.Name)

	d.lightText()
	d.Cell(40, 0, "Generated: "+d.nowUTC.Format("2006-01-02 15:04:05"))
}

// billTo lists who the invoice goes to, skipping absent fields so e.g.
// country can be omitted for domestic clients
func (d *document) billTo() {
	d.blackText()
	d.SetFont(d.theme.SerifFont, "", 10)
	d.Ln(10)
	d.Ln(10)

	d.Cell(0, 0, "To: ")

	fields := []string{
		d.cfg.BillTo.Email,
		d.cfg.BillTo.Name,
		d.cfg.BillTo.Street,
		d.cfg.BillTo.CityStateZip,
		d.cfg.BillTo.Country,
	}
	for i, field := range fields {
		if field == "" {
			continue
		}
		d.SetX(20)
		d.Cell(0, 0, field)
		if i != len(fields)-1 {
			d.Ln(5)
		}
	}
}

// billTable is the two-row table with department, currency, terms and
// due date
func (d *document) billTable() {
	d.whiteText()
	d.SetDrawColor(64, 64, 64)
	d.lightFillColor()
	d.SetLineWidth(0.3)
	d.SetFont(d.theme.SerifFont, "B", 10)

	d.SetY(d.GetY() + 10)

	headers := []string{"Department", "Currency", "Payment Terms", "Due Date"}
	values := []string{
		d.cfg.Bill.Department,
		d.cfg.Bill.Currency,
		d.cfg.Bill.PaymentTerms,
		d.cfg.Bill.DueDate,
	}

	for _, name := range headers {
		d.headerCell(cellWidth(name), 5, name)
	}

	d.Ln(5)
	d.SetFillColor(255, 255, 255)
	d.blackText()
	d.SetFont(d.theme.SerifFont, "", 8)

	for i, value := range values {
		d.contentCellLeft(cellWidth(headers[i]), 4, value)
	}
}

// workTable is the itemized description of work done during the month
func (d *document) workTable() {
	notes := d.cfg.WorkNotes()
	if len(notes) == 0 {
		return
	}

	d.Ln(20)
	d.SetFont(d.theme.SerifFont, "B", 12)
	d.blackText()
	d.Cell(40, 0, "Work Details")

	d.Ln(5)
	d.SetFont(d.theme.SerifFont, "", 10)
	for _, note := range notes {
		d.Cell(125, 5, note)
		d.Ln(5)
	}
}

var lineItemWidths = []float64{116.5, 25, 25, 25}

// lineItemsTable draws the computed line items followed by subtotal, tax
// and grand total
func (d *document) lineItemsTable() {
	d.whiteText()
	d.SetDrawColor(64, 64, 64)
	d.lightFillColor()
	d.SetLineWidth(0.3)
	d.SetFont(d.theme.SerifFont, "B", 10)
	d.SetY(d.GetY() + 10)

	headers := []string{"Description", "Days", "Rate", "Line Total"}
	for i, name := range headers {
		d.headerCell(lineItemWidths[i], 5, name)
	}

	d.Ln(5)
	d.SetFillColor(255, 255, 255)
	d.blackText()
	d.SetFont(d.theme.SerifFont, "", 8)

	for _, item := range d.inv.LineItems {
		d.contentCell(lineItemWidths[0], 4, item.Description)
		d.contentCell(lineItemWidths[1], 4, fmt.Sprintf("%d", item.Quantity))
		d.contentCell(lineItemWidths[2], 4, d.money(item.Rate))
		d.contentCell(lineItemWidths[3], 4, d.money(item.Amount))
		d.Ln(4)
	}

	d.SetDrawColor(255, 255, 255)
	d.Ln(2)
	d.totalsRow("Subtotal", d.money(d.inv.Subtotal), 4)

	d.Ln(4)
	d.totalsRow(d.inv.TaxName, d.money(d.inv.Tax), 4)

	d.Ln(4)
	d.SetFont(d.theme.SerifFont, "B", 10)
	yPos := d.GetY()
	xPos := d.GetX()
	d.totalsRow("Total", d.money(d.inv.Total), 6)

	// dividing line just above the total entry
	x2Pos := d.GetX()
	d.SetDrawColor(64, 64, 64)
	d.Line(xPos, yPos, x2Pos, yPos)
}

// totalsRow blanks the leftmost cells and fills the two rightmost with a
// label and an amount
func (d *document) totalsRow(label, amount string, height float64) {
	for i := 0; i < len(lineItemWidths)-2; i++ {
		d.blankCell(lineItemWidths[i], height)
	}
	d.contentCell(lineItemWidths[len(lineItemWidths)-2], height, label)
	d.contentCell(lineItemWidths[len(lineItemWidths)-1], height, amount)
}

func (d *document) money(amount decimal.Decimal) string {
	return d.cfg.CurrencyMarker + " " + invoice.FormatCents(amount)
}

// cellWidth sizes bill-table cells from the header text, matching the
// table's compact look
func cellWidth(header string) float64 {
	return float64(len(header)) * 4.9
}
