package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNoActiveShift      = errors.New("no hay un turno activo para el operador")
)

// Conflictos de estado específicos; todos cumplen errors.Is(err, ErrConflict).
var (
	ErrShiftAlreadyActive      = fmt.Errorf("%w: el operador ya tiene un turno abierto", ErrConflict)
	ErrInvalidShiftState       = fmt.Errorf("%w: transición de turno no permitida", ErrConflict)
	ErrInvalidStatusTransition = fmt.Errorf("%w: cambio de estado de la orden no permitido", ErrConflict)
)

// ErrPermissionDenied el operador no tiene el permiso requerido (cumple errors.Is(err, ErrForbidden)).
var ErrPermissionDenied = fmt.Errorf("%w: permiso insuficiente", ErrForbidden)

// FieldViolation una violación de validación sobre un campo.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones encontradas en una misma validación.
// Nunca se devuelve vacío: usar Violations.Err().
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "entrada inválida: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Violations acumula violaciones de campo durante una validación.
type Violations []FieldViolation

// Add registra una violación.
func (v *Violations) Add(field, message string) {
	*v = append(*v, FieldViolation{Field: field, Message: message})
}

// Addf registra una violación con mensaje formateado.
func (v *Violations) Addf(field, format string, args ...any) {
	v.Add(field, fmt.Sprintf(format, args...))
}

// Merge agrega las violaciones de otro acumulador anteponiendo un prefijo al campo.
func (v *Violations) Merge(prefix string, other Violations) {
	for _, o := range other {
		v.Add(prefix+o.Field, o.Message)
	}
}

// Err devuelve nil si no hay violaciones, o un *ValidationError con todas ellas.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	out := make([]FieldViolation, len(v))
	copy(out, v)
	return &ValidationError{Violations: out}
}

// Invalid construye un *ValidationError de una sola violación.
func Invalid(field, message string) error {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

// AsValidation extrae las violaciones de err si es un *ValidationError.
func AsValidation(err error) ([]FieldViolation, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	return nil, false
}
