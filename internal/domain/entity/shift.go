package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Optica-api/internal/domain"
)

// ShiftStatus estado de un turno de caja.
type ShiftStatus string

// Estados válidos de Shift. ENDED es terminal.
const (
	ShiftStatusActive ShiftStatus = "ACTIVE"
	ShiftStatusPaused ShiftStatus = "PAUSED"
	ShiftStatusEnded  ShiftStatus = "ENDED"
)

// Valid informa si el estado pertenece a la enumeración.
func (s ShiftStatus) Valid() bool {
	switch s {
	case ShiftStatusActive, ShiftStatusPaused, ShiftStatusEnded:
		return true
	}
	return false
}

// Open informa si el turno sigue abierto (ACTIVE o PAUSED).
func (s ShiftStatus) Open() bool {
	return s == ShiftStatusActive || s == ShiftStatusPaused
}

// Shift representa una sesión de trabajo de un operador con manejo de efectivo.
// Invariante: como máximo un turno ACTIVE o PAUSED por operador.
type Shift struct {
	ID           string
	OperatorID   string
	StartTime    time.Time
	EndTime      *time.Time
	Status       ShiftStatus
	OpeningFloat decimal.Decimal
	ClosingFloat *decimal.Decimal
	ExpectedCash *decimal.Decimal // calculado al cerrar: apertura + pagos en efectivo - gastos en efectivo
	Discrepancy  *decimal.Decimal // ClosingFloat - ExpectedCash (informativo)
	Notes        string
	Forced       bool
	UpdatedAt    time.Time
}

// Pause ACTIVE -> PAUSED.
func (s *Shift) Pause(now time.Time) error {
	if s.Status != ShiftStatusActive {
		return domain.ErrInvalidShiftState
	}
	s.Status = ShiftStatusPaused
	s.UpdatedAt = now
	return nil
}

// Resume PAUSED -> ACTIVE.
func (s *Shift) Resume(now time.Time) error {
	if s.Status != ShiftStatusPaused {
		return domain.ErrInvalidShiftState
	}
	s.Status = ShiftStatusActive
	s.UpdatedAt = now
	return nil
}

// End cierra el turno registrando el conteo declarado y la diferencia contra el efectivo esperado.
// No bloquea el cierre por descuadre. Un turno PAUSED (sesión interrumpida) solo se cierra
// forzado, y un cierre forzado exige notas.
func (s *Shift) End(now time.Time, closingFloat, expectedCash decimal.Decimal, notes string, forced bool) error {
	switch s.Status {
	case ShiftStatusActive:
	case ShiftStatusPaused:
		if !forced {
			return domain.ErrInvalidShiftState
		}
	default:
		return domain.ErrInvalidShiftState
	}
	var v domain.Violations
	if closingFloat.IsNegative() {
		v.Add("closing_float", "no puede ser negativo")
	}
	if forced && isBlank(notes) {
		v.Add("notes", "obligatorias en un cierre forzado")
	}
	if err := v.Err(); err != nil {
		return err
	}
	diff := closingFloat.Sub(expectedCash)
	s.Status = ShiftStatusEnded
	s.EndTime = &now
	s.ClosingFloat = &closingFloat
	s.ExpectedCash = &expectedCash
	s.Discrepancy = &diff
	s.Notes = notes
	s.Forced = forced
	s.UpdatedAt = now
	return nil
}

// ExpectedCash efectivo esperado en caja: apertura + ingresos en efectivo - egresos en efectivo.
func ExpectedCash(openingFloat, cashIn, cashOut decimal.Decimal) decimal.Decimal {
	return openingFloat.Add(cashIn).Sub(cashOut)
}
