package patient

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
)

// UseCase registro y búsqueda de pacientes.
type UseCase struct {
	repo repository.PatientRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.PatientRepository) *UseCase {
	return &UseCase{repo: repo}
}

// CreatePatient registra un paciente. El documento, si se informa, es único.
func (uc *UseCase) CreatePatient(ctx context.Context, in dto.PatientRequest) (*dto.PatientResponse, error) {
	var v domain.Violations
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		v.Add("full_name", "requerido")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			v.Add("email", "formato inválido")
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Patient{
		ID:         uuid.New().String(),
		FullName:   name,
		Phone:      strings.TrimSpace(in.Phone),
		Email:      email,
		DocumentID: strings.TrimSpace(in.DocumentID),
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// GetPatient obtiene un paciente por ID.
func (uc *UseCase) GetPatient(ctx context.Context, id string) (*dto.PatientResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(p), nil
}

// SearchPatients coincidencia por nombre, teléfono o documento.
func (uc *UseCase) SearchPatients(ctx context.Context, query string, page dto.PageRequest) ([]dto.PatientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.Search(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

func toResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		Phone:      p.Phone,
		Email:      p.Email,
		DocumentID: p.DocumentID,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
	}
}
