package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motopecasjacare/erp/internal/config"
	"github.com/motopecasjacare/erp/internal/domain"
)

func newTestDocumentService(t *testing.T) *DocumentService {
	t.Helper()
	svc, err := NewDocumentService(config.StoreConfig{
		Name:    "Moto Peças Jacaré",
		CNPJ:    "12.345.678/0001-90",
		Address: "Av. Brasil, 100 - Centro",
		Phone:   "(11) 4002-8922",
	})
	require.NoError(t, err)
	return svc
}

func receiptOrder() *domain.Order {
	return &domain.Order{
		ID:            42,
		PlacedAt:      fixedNow,
		Total:         dec("71.80"),
		Status:        domain.OrderStatusCompleted,
		PaymentMethod: domain.PaymentMethodCreditCard,
		Customer:      &domain.Customer{ID: 4, Name: "João da Silva"},
		Items: []domain.OrderItem{
			{ProductID: 1, Description: "Pastilha de freio dianteira", Quantity: 2, UnitPrice: dec("35.90"), Subtotal: dec("71.80")},
		},
	}
}

func TestDocumentService_ReceiptText(t *testing.T) {
	svc := newTestDocumentService(t)

	text, err := svc.ReceiptText(receiptOrder())
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "MOTO PEÇAS JACARÉ", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines, "CUPOM NÃO FISCAL")
	assert.Contains(t, lines, "PEDIDO: #42")
	assert.Contains(t, lines, "DATA: 10/05/2024 14:30")
	assert.Contains(t, lines, "CLIENTE: João da Silva")
	assert.Contains(t, lines, "CPF/CNPJ: Não Informado")
	assert.Contains(t, lines, "Pastilha de fre |   2 |     35.90 |     71.80")
	assert.Contains(t, lines, "VALOR TOTAL: "+strings.Repeat(" ", 18)+"R$ 71.80")
	assert.Contains(t, lines, "FORMA PGTO: Cartão de Crédito")
	assert.Contains(t, lines, strings.Repeat("-", 43))
	assert.Contains(t, text, "*** OBRIGADO PELA PREFERÊNCIA! ***")
}

func TestDocumentService_ReceiptTextWithDocument(t *testing.T) {
	svc := newTestDocumentService(t)
	order := receiptOrder()
	order.Customer.Document = "123.456.789-00"

	text, err := svc.ReceiptText(order)
	require.NoError(t, err)

	assert.Contains(t, text, "CPF/CNPJ: 123.456.789-00\n")
}

func TestDocumentService_ReceiptFormats(t *testing.T) {
	svc := newTestDocumentService(t)

	t.Run("html wraps the text", func(t *testing.T) {
		out, err := svc.Receipt(receiptOrder(), FormatHTML)
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, "<title>Cupom #42</title>")
		assert.Contains(t, html, "<pre>")
		assert.Contains(t, html, "CUPOM NÃO FISCAL")
	})

	t.Run("pdf", func(t *testing.T) {
		out, err := svc.Receipt(receiptOrder(), FormatPDF)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
	})

	t.Run("text is the default", func(t *testing.T) {
		out, err := svc.Receipt(receiptOrder(), FormatText)
		require.NoError(t, err)
		assert.Contains(t, string(out), "PEDIDO: #42")
	})
}

func TestDocumentService_Quote(t *testing.T) {
	svc := newTestDocumentService(t)
	quote := &domain.Quote{
		CartID:   "c1",
		Customer: &domain.Customer{Name: "Oficina <Zé>"},
		IssuedAt: fixedNow,
		Items: []domain.CartItem{
			{ProductID: 1, Description: "Pastilha de freio", Quantity: 2, UnitPrice: dec("35.90"), Subtotal: dec("71.80")},
			{ProductID: 2, Description: "Óleo 20W50", Quantity: 1, UnitPrice: dec("28.80"), Subtotal: dec("28.80")},
		},
		Total: dec("100.60"),
	}

	t.Run("html", func(t *testing.T) {
		out, err := svc.Quote(quote, FormatHTML)
		require.NoError(t, err)
		html := string(out)
		assert.Contains(t, html, "ORÇAMENTO")
		assert.Contains(t, html, "Oficina &lt;Zé&gt;")
		assert.Contains(t, html, "10/05/2024 14:30")
		assert.Contains(t, html, "R$ 71.80")
		assert.Contains(t, html, "Valor Total: R$ 100.60")
	})

	t.Run("pdf", func(t *testing.T) {
		out, err := svc.Quote(quote, FormatPDF)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
	})
}

func TestTextPadding(t *testing.T) {
	assert.Equal(t, "Óleo ", ljust(5, "Óleo"))
	assert.Equal(t, "Pasti", ljust(5, "Pastilha"))
	assert.Equal(t, "   42", rjust(5, "42"))
	assert.Equal(t, "123456", rjust(3, "123456"))
	assert.Equal(t, "  ab", center(6, "ab"))
}

func TestDocumentFormat_ContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/html; charset=utf-8", FormatHTML.ContentType())
	assert.Equal(t, "text/plain; charset=utf-8", DocumentFormat("").ContentType())
}
