package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartShiftRequest body para POST /api/shifts.
type StartShiftRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float"`
}

// EndShiftRequest body para POST /api/shifts/:id/end.
type EndShiftRequest struct {
	ClosingFloat decimal.Decimal `json:"closing_float"`
	Notes        string          `json:"notes"`
	Forced       bool            `json:"forced"`
}

// ShiftResponse salida de un turno.
type ShiftResponse struct {
	ID           string           `json:"id"`
	OperatorID   string           `json:"operator_id"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      *time.Time       `json:"end_time,omitempty"`
	Status       string           `json:"status"`
	OpeningFloat decimal.Decimal  `json:"opening_float"`
	ClosingFloat *decimal.Decimal `json:"closing_float,omitempty"`
	ExpectedCash *decimal.Decimal `json:"expected_cash,omitempty"`
	Discrepancy  *decimal.Decimal `json:"discrepancy,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Forced       bool             `json:"forced"`
}

// MethodTotal total recaudado con un medio de pago.
type MethodTotal struct {
	Method string          `json:"method"`
	Total  decimal.Decimal `json:"total"`
}

// ShiftSummaryResponse resumen de caja de un turno (base del reporte Z).
type ShiftSummaryResponse struct {
	Shift            ShiftResponse    `json:"shift"`
	OperatorName     string           `json:"operator_name"`
	PaymentsByMethod []MethodTotal    `json:"payments_by_method"`
	CashIn           decimal.Decimal  `json:"cash_in"`
	CashExpenses     decimal.Decimal  `json:"cash_expenses"`
	ExpectedCash     decimal.Decimal  `json:"expected_cash"`
	Discrepancy      *decimal.Decimal `json:"discrepancy,omitempty"`
	OrderCount       int              `json:"order_count"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
