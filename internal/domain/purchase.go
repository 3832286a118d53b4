package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry is a receipt of goods from a supplier
type StockEntry struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"productId"`
	SupplierID    int64           `json:"supplierId"`
	ReceivedOn    time.Time       `json:"receivedOn"`
	IssuedOn      time.Time       `json:"issuedOn"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PurchaseInput represents input for receiving goods
type PurchaseInput struct {
	SupplierID    int64           `json:"supplierId" validate:"required,min=1"`
	ProductID     int64           `json:"productId" validate:"required,min=1"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty" validate:"omitempty,max=50"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	UnitCost      decimal.Decimal `json:"unitCost" validate:"gte=0"`
	IssuedOn      *string         `json:"issuedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ReceivedOn    *string         `json:"receivedOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PurchaseResult is the outcome of a stock receipt
type PurchaseResult struct {
	Entry    *StockEntry     `json:"entry"`
	NewStock int             `json:"newStock"`
	NewCost  decimal.Decimal `json:"newCost"`
}

// PurchaseHistoryRow is a stock entry joined with supplier and product names
type PurchaseHistoryRow struct {
	ID            int64           `json:"id"`
	Supplier      string          `json:"supplier"`
	Product       string          `json:"product"`
	IssuedOn      time.Time       `json:"issuedOn"`
	ReceivedOn    time.Time       `json:"receivedOn"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
}
