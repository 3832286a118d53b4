package domain

import "time"

// Customer is a buyer registered at the counter
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerInput represents input for registering a customer
type CustomerInput struct {
	Name     string  `json:"name" validate:"required,max=150"`
	Document string  `json:"document" validate:"required,max=20"`
	Phone    string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Address  string  `json:"address,omitempty" validate:"omitempty,max=255"`
}

// Supplier is a company the shop buys parts from
type Supplier struct {
	ID        int64     `json:"id"`
	TradeName string    `json:"tradeName"`
	CNPJ      string    `json:"cnpj"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SupplierInput represents input for registering a supplier
type SupplierInput struct {
	TradeName string `json:"tradeName" validate:"required,max=150"`
	CNPJ      string `json:"cnpj" validate:"required,max=20"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Contact   string `json:"contact,omitempty" validate:"omitempty,max=100"`
}
