package domain

// OrderStatus represents the lifecycle state of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Label returns the status as printed on documents
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pendente"
	case OrderStatusCompleted:
		return "Concluído"
	case OrderStatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// PaymentMethod represents how a customer pays an order
type PaymentMethod string

const (
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCash       PaymentMethod = "cash"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodCash:
		return true
	}
	return false
}

// Label returns the payment method as printed on receipts
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodPix:
		return "Pix"
	case PaymentMethodCreditCard:
		return "Cartão de Crédito"
	case PaymentMethodDebitCard:
		return "Cartão de Débito"
	case PaymentMethodCash:
		return "Dinheiro"
	}
	return string(m)
}

// ReturnCondition describes the state of a returned part
type ReturnCondition string

const (
	ReturnConditionNew     ReturnCondition = "new"
	ReturnConditionDamaged ReturnCondition = "damaged"
	ReturnConditionScrap   ReturnCondition = "scrap"
)

// IsValid checks if the return condition is valid
func (c ReturnCondition) IsValid() bool {
	switch c {
	case ReturnConditionNew, ReturnConditionDamaged, ReturnConditionScrap:
		return true
	}
	return false
}

// Label returns the condition in Portuguese
func (c ReturnCondition) Label() string {
	switch c {
	case ReturnConditionNew:
		return "Novo"
	case ReturnConditionDamaged:
		return "Danificado"
	case ReturnConditionScrap:
		return "Sucata"
	}
	return string(c)
}

// Resellable reports whether a part in this condition goes back on the shelf
func (c ReturnCondition) Resellable() bool {
	return c == ReturnConditionNew
}

// ExpenseType classifies an expense
type ExpenseType string

const (
	ExpenseTypePayroll     ExpenseType = "payroll"
	ExpenseTypeRent        ExpenseType = "rent"
	ExpenseTypeUtilities   ExpenseType = "utilities"
	ExpenseTypeTaxes       ExpenseType = "taxes"
	ExpenseTypeMaintenance ExpenseType = "maintenance"
	ExpenseTypeOther       ExpenseType = "other"
)

// IsValid checks if the expense type is valid
func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpenseTypePayroll, ExpenseTypeRent, ExpenseTypeUtilities,
		ExpenseTypeTaxes, ExpenseTypeMaintenance, ExpenseTypeOther:
		return true
	}
	return false
}

// Label returns the expense type in Portuguese
func (t ExpenseType) Label() string {
	switch t {
	case ExpenseTypePayroll:
		return "Salário"
	case ExpenseTypeRent:
		return "Aluguel"
	case ExpenseTypeUtilities:
		return "Contas (Água, Luz, Internet)"
	case ExpenseTypeTaxes:
		return "Impostos"
	case ExpenseTypeMaintenance:
		return "Manutenção"
	case ExpenseTypeOther:
		return "Outros"
	}
	return string(t)
}

// ExpenseStatus represents whether an expense was settled
type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "pending"
	ExpenseStatusPaid    ExpenseStatus = "paid"
)

// IsValid checks if the expense status is valid
func (s ExpenseStatus) IsValid() bool {
	return s == ExpenseStatusPending || s == ExpenseStatusPaid
}

// Label returns the expense status in Portuguese
func (s ExpenseStatus) Label() string {
	switch s {
	case ExpenseStatusPending:
		return "Pendente"
	case ExpenseStatusPaid:
		return "Pago"
	}
	return string(s)
}

// UserRole represents the access level of a user
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOperator UserRole = "operator"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleOperator
}
