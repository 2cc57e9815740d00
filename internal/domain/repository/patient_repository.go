package repository

import (
	"context"

	"github.com/jhoicas/Optica-api/internal/domain/entity"
)

// PatientRepository define el puerto de persistencia para pacientes.
type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	GetByID(ctx context.Context, id string) (*entity.Patient, error)
	// Search coincide por nombre, teléfono o documento (subcadena, sin distinguir mayúsculas).
	Search(ctx context.Context, query string, limit, offset int) ([]*entity.Patient, error)
}
