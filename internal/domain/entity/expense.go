package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory categoría de gasto (arriendo, servicios, insumos...).
type ExpenseCategory struct {
	ID     string
	Name   string
	Active bool
}

// Expense gasto del negocio. ShiftID solo se asigna a gastos pagados en efectivo.
type Expense struct {
	ID             string
	Date           time.Time
	CategoryID     string
	Description    string
	Amount         decimal.Decimal
	Method         PaymentMethod
	BankName       string
	TransactionRef string
	ShiftID        *string
	CreatedBy      string
	CreatedAt      time.Time
}
