package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"` // FRAME | LENS | CONTACT_LENS | ACCESSORY | SERVICE
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PatientRequest entrada para registrar un paciente.
type PatientRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	DocumentID string `json:"document_id"`
	Notes      string `json:"notes"`
}

// PatientResponse salida de un paciente.
type PatientResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	DocumentID string    `json:"document_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordExpenseRequest body para POST /api/expenses. Date YYYY-MM-DD (vacío = hoy).
type RecordExpenseRequest struct {
	Date           string          `json:"date,omitempty"`
	CategoryID     string          `json:"category_id"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	BankName       string          `json:"bank_name,omitempty"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	CategoryID     string          `json:"category_id"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	BankName       string          `json:"bank_name,omitempty"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	ShiftID        *string         `json:"shift_id,omitempty"`
	CreatedBy      string          `json:"created_by"`
}

// ExpenseCategoryRequest entrada para crear una categoría de gasto.
type ExpenseCategoryRequest struct {
	Name string `json:"name"`
}

// ExpenseCategoryResponse salida de una categoría de gasto.
type ExpenseCategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
