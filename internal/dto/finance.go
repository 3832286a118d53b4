package dto

import "github.com/motopecasjacare/erp/internal/domain"

// PayExpenseRequest settles a pending expense; paidOn defaults to today
type PayExpenseRequest struct {
	PaidOn *string `json:"paidOn,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExportRequest asks for a CSV export of a dataset
type ExportRequest struct {
	Dataset domain.ExportDataset `json:"dataset" validate:"required,oneof=customers suppliers products purchases orders expenses"`
}
