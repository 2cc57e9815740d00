package repository

import (
	"context"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// ShiftRepository define el puerto de persistencia para turnos de caja.
type ShiftRepository interface {
	// Create devuelve domain.ErrShiftAlreadyActive si el operador ya tiene un turno abierto.
	Create(ctx context.Context, shift *entity.Shift) error
	Update(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	// GetForUpdate bloquea la fila del turno (SELECT FOR UPDATE) dentro de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Shift, error)
	// GetOpenByOperator devuelve el turno ACTIVE o PAUSED del operador, o nil.
	GetOpenByOperator(ctx context.Context, operatorID string) (*entity.Shift, error)
	// GetOpenByOperatorForShare igual que GetOpenByOperator pero toma un bloqueo compartido
	// (SELECT FOR SHARE): espera a un cierre concurrente y, si éste confirma, devuelve nil.
	GetOpenByOperatorForShare(ctx context.Context, operatorID string) (*entity.Shift, error)
	ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.Shift, error)
}
