package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo turnos de caja sobre PostgreSQL (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const shiftColumns = `id, operator_id, start_time, end_time, status, opening_float, closing_float,
	expected_cash, discrepancy, notes, forced, updated_at`

func scanShift(row pgx.Row) (*entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(&s.ID, &s.OperatorID, &s.StartTime, &s.EndTime, &s.Status, &s.OpeningFloat,
		&s.ClosingFloat, &s.ExpectedCash, &s.Discrepancy, &s.Notes, &s.Forced, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta el turno. El índice único parcial shifts_one_open_per_operator garantiza
// un solo turno abierto por operador incluso con altas concurrentes.
func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OperatorID, s.StartTime, s.EndTime, s.Status, s.OpeningFloat, s.ClosingFloat,
		s.ExpectedCash, s.Discrepancy, s.Notes, s.Forced, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "shifts_one_open_per_operator" {
				return domain.ErrShiftAlreadyActive
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// Update persiste estado y datos de cierre.
func (r *ShiftRepo) Update(ctx context.Context, s *entity.Shift) error {
	query := `
		UPDATE shifts SET end_time = $2, status = $3, closing_float = $4, expected_cash = $5,
			discrepancy = $6, notes = $7, forced = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.EndTime, s.Status, s.ClosingFloat, s.ExpectedCash, s.Discrepancy, s.Notes, s.Forced, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un turno por ID.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)
}

// GetForUpdate obtiene el turno y bloquea la fila (SELECT FOR UPDATE).
func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shift, error) {
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1 FOR UPDATE`, id)
}

// GetOpenByOperator turno ACTIVE o PAUSED del operador.
func (r *ShiftRepo) GetOpenByOperator(ctx context.Context, operatorID string) (*entity.Shift, error) {
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE operator_id = $1 AND status <> 'ENDED'`, operatorID)
}

// GetOpenByOperatorForShare bloquea la fila en modo compartido. Un EndShift concurrente
// (FOR UPDATE) hace esperar a la consulta; al confirmar, el WHERE se reevalúa sobre la
// versión ENDED y no devuelve filas. Mientras se mantiene, el cierre espera y su conteo
// incluye lo registrado por esta transacción.
func (r *ShiftRepo) GetOpenByOperatorForShare(ctx context.Context, operatorID string) (*entity.Shift, error) {
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE operator_id = $1 AND status <> 'ENDED' FOR SHARE`, operatorID)
}

func (r *ShiftRepo) getOne(ctx context.Context, query string, arg string) (*entity.Shift, error) {
	s, err := scanShift(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

// ListByOperator historial de turnos del operador, más recientes primero.
func (r *ShiftRepo) ListByOperator(ctx context.Context, operatorID string, limit, offset int) ([]*entity.Shift, error) {
	query, args := paginate(`SELECT `+shiftColumns+` FROM shifts WHERE operator_id = $1 ORDER BY start_time DESC`,
		[]any{operatorID}, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
