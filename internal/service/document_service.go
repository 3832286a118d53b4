package service

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/domain"
	"github.com/motopecasjacare/erp/internal/pkg/money"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// receiptWidth is the character width of the printed receipt
const receiptWidth = 43

// DocumentFormat is the output format of a printable document
type DocumentFormat string

const (
	FormatText DocumentFormat = "text"
	FormatHTML DocumentFormat = "html"
	FormatPDF  DocumentFormat = "pdf"
)

// ContentType returns the HTTP content type of the format
func (f DocumentFormat) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// DocumentService renders receipts and quotes
type DocumentService struct {
	store       config.StoreConfig
	receiptText *texttemplate.Template
	receiptHTML *htmltemplate.Template
	quoteHTML   *htmltemplate.Template
}

// NewDocumentService parses the document templates
func NewDocumentService(store config.StoreConfig) (*DocumentService, error) {
	textFuncs := sprig.TxtFuncMap()
	htmlFuncs := sprig.HtmlFuncMap()
	for name, fn := range documentFuncs() {
		textFuncs[name] = fn
		htmlFuncs[name] = fn
	}

	receiptText, err := texttemplate.New("receipt.txt.tmpl").Funcs(textFuncs).ParseFS(templateFS, "templates/receipt.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt template: %w", err)
	}
	receiptHTML, err := htmltemplate.New("receipt.html.tmpl").Funcs(htmlFuncs).ParseFS(templateFS, "templates/receipt.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse receipt page template: %w", err)
	}
	quoteHTML, err := htmltemplate.New("quote.html.tmpl").Funcs(htmlFuncs).ParseFS(templateFS, "templates/quote.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse quote template: %w", err)
	}

	return &DocumentService{
		store:       store,
		receiptText: receiptText,
		receiptHTML: receiptHTML,
		quoteHTML:   quoteHTML,
	}, nil
}

// Receipt renders the non-fiscal receipt of an order
func (s *DocumentService) Receipt(order *domain.Order, format DocumentFormat) ([]byte, error) {
	text, err := s.ReceiptText(order)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatHTML:
		var buf bytes.Buffer
		err := s.receiptHTML.Execute(&buf, map[string]any{"OrderID": order.ID, "Text": text})
		if err != nil {
			return nil, fmt.Errorf("failed to render receipt page: %w", err)
		}
		return buf.Bytes(), nil
	case FormatPDF:
		return receiptPDF(text)
	default:
		return []byte(text), nil
	}
}

// ReceiptText renders the fixed-width receipt text of an order
func (s *DocumentService) ReceiptText(order *domain.Order) (string, error) {
	customer := order.Customer
	if customer == nil {
		customer = &domain.Customer{}
	}

	var buf bytes.Buffer
	err := s.receiptText.Execute(&buf, map[string]any{
		"Store":    s.store,
		"Order":    order,
		"Customer": customer,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}

// Quote renders a quote ("ORÇAMENTO") of a cart
func (s *DocumentService) Quote(q *domain.Quote, format DocumentFormat) ([]byte, error) {
	if format == FormatPDF {
		return s.quotePDF(q)
	}

	var buf bytes.Buffer
	if err := s.quoteHTML.Execute(&buf, map[string]any{"Store": s.store, "Quote": q}); err != nil {
		return nil, fmt.Errorf("failed to render quote: %w", err)
	}
	return buf.Bytes(), nil
}

func receiptPDF(text string) ([]byte, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	const lineHeight = 3.5
	height := float64(len(lines))*lineHeight + 12

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 80, Ht: height},
	})
	pdf.SetMargins(4, 6, 4)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Courier", "", 7)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range lines {
		pdf.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
	}
	return outputPDF(pdf)
}

func (s *DocumentService) quotePDF(q *domain.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, tr(strings.ToUpper(s.store.Name)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("ORÇAMENTO"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	customer := ""
	if q.Customer != nil {
		customer = q.Customer.Name
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Cliente: "+customer), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Data: "+formatDateTime(q.IssuedAt)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{100, 20, 35, 35}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for i, title := range []string{"Produto", "Qtd", "Preço Unit.", "Subtotal"} {
		pdf.CellFormat(widths[i], 8, tr(title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range q.Items {
		pdf.CellFormat(widths[0], 7, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprint(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, money.Format(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money.Format(item.Subtotal), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Valor Total: "+money.Format(q.Total), "", 1, "R", false, 0, "")
	return outputPDF(pdf)
}

func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func documentFuncs() map[string]any {
	return map[string]any{
		"ljust":    ljust,
		"rjust":    rjust,
		"center":   center,
		"datetime": formatDateTime,
		"fixed":    func(d decimal.Decimal) string { return d.StringFixed(money.PriceScale) },
		"brl":      money.Format,
	}
}

func formatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// ljust cuts s to width runes and pads it on the right
func ljust(width int, s string) string {
	if utf8.RuneCountInString(s) > width {
		s = string([]rune(s)[:width])
	}
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

// rjust pads s on the left up to width runes
func rjust(width int, s string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// center pads s on both sides up to width runes
func center(width int, s string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s
}
