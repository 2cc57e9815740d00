package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
)

// PaymentMethod medio de pago (pagos y gastos).
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

// PaymentMethods en el orden usado por reportes.
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheque,
}

// Valid informa si el medio pertenece a la enumeración.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// RequiresBankReference tarjeta, transferencia y cheque exigen banco y número de transacción.
func (m PaymentMethod) RequiresBankReference() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// ValidateMethod valida el medio y, si aplica, las referencias bancarias.
func ValidateMethod(m PaymentMethod, bankName, transactionRef string) domain.Violations {
	var v domain.Violations
	if !m.Valid() {
		v.Addf("method", "medio de pago desconocido %q", m)
		return v
	}
	if m.RequiresBankReference() {
		if isBlank(bankName) {
			v.Add("bank_name", "requerido para pagos bancarios")
		}
		if isBlank(transactionRef) {
			v.Add("transaction_ref", "requerido para pagos bancarios")
		}
	}
	return v
}

// Payment abono registrado contra una orden de venta.
type Payment struct {
	ID             string
	OrderID        string
	Date           time.Time
	Amount         decimal.Decimal
	Method         PaymentMethod
	BankName       string
	TransactionRef string
	ReceivedBy     string
	ShiftID        string
}
