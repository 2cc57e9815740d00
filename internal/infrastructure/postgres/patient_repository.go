package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/textnorm"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo pacientes sobre PostgreSQL.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

const patientColumns = `id, full_name, phone, email, document_id, notes, created_at, updated_at`

// Create documento duplicado -> domain.ErrDuplicate.
func (r *PatientRepo) Create(ctx context.Context, p *entity.Patient) error {
	_, err := r.q.Exec(ctx, `INSERT INTO patients (`+patientColumns+`, search_key) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.FullName, p.Phone, p.Email, nullString(p.DocumentID), p.Notes, p.CreatedAt, p.UpdatedAt,
		textnorm.SearchKey(p.FullName, p.Phone, p.DocumentID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var (
		p   entity.Patient
		doc *string
	)
	if err := row.Scan(&p.ID, &p.FullName, &p.Phone, &p.Email, &doc, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.DocumentID = derefString(doc)
	return &p, nil
}

// GetByID obtiene un paciente por ID.
func (r *PatientRepo) GetByID(ctx context.Context, id string) (*entity.Patient, error) {
	p, err := scanPatient(r.q.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

// Search por nombre, teléfono o documento sin distinguir tildes ni mayúsculas, ordenado por nombre.
func (r *PatientRepo) Search(ctx context.Context, q string, limit, offset int) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients`
	var args []any
	if q = textnorm.Fold(q); q != "" {
		args = append(args, "%"+q+"%")
		query += ` WHERE search_key LIKE $1`
	}
	query, args = paginate(query+` ORDER BY full_name`, args, limit, offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
