package domain

import "time"

// ExportDataset names a table that can be exported to CSV
type ExportDataset string

const (
	ExportDatasetCustomers ExportDataset = "customers"
	ExportDatasetSuppliers ExportDataset = "suppliers"
	ExportDatasetProducts  ExportDataset = "products"
	ExportDatasetPurchases ExportDataset = "purchases"
	ExportDatasetOrders    ExportDataset = "orders"
	ExportDatasetExpenses  ExportDataset = "expenses"
)

// IsValid checks if the dataset is exportable
func (d ExportDataset) IsValid() bool {
	switch d {
	case ExportDatasetCustomers, ExportDatasetSuppliers, ExportDatasetProducts,
		ExportDatasetPurchases, ExportDatasetOrders, ExportDatasetExpenses:
		return true
	}
	return false
}

// ExportJob is an enqueued export
type ExportJob struct {
	TaskID  string        `json:"taskId"`
	Dataset ExportDataset `json:"dataset"`
}

// ExportFile is an exported CSV stored in object storage
type ExportFile struct {
	Key          string    `json:"key"`
	Dataset      string    `json:"dataset"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	URL          string    `json:"url"`
}
