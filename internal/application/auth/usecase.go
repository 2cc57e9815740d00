package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain"
	"github.com/jhoicas/Optica-api/internal/domain/entity"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y permisos.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	shiftRepo repository.ShiftRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, shiftRepo repository.ShiftRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, shiftRepo: shiftRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
// Sin permisos explícitos se asignan los del rol.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role == "" {
		role = entity.RoleCashier
	}
	var v domain.Violations
	if _, err := mail.ParseAddress(email); err != nil {
		v.Add("email", "formato inválido")
	}
	if len(in.Password) < 8 {
		v.Add("password", "mínimo 8 caracteres")
	}
	switch role {
	case entity.RoleAdmin, entity.RoleOptometrist, entity.RoleCashier:
	default:
		v.Addf("role", "rol desconocido %q", role)
	}
	perms, pv := parsePermissions(in.Permissions)
	v.Merge("", pv)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if len(in.Permissions) == 0 {
		perms = entity.DefaultPermissions(role)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		Permissions:  perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin crea el administrador inicial si el email no existe. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}

// Login verifica email/password, genera JWT y retorna token + usuario. Si el operador dejó
// un turno ACTIVE o PAUSED se informa en IncompleteShift.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, permissionStrings(user.Permissions), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	resp := &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}
	open, err := uc.shiftRepo.GetOpenByOperator(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		resp.IncompleteShift = shift.ToShiftResponse(open)
	}
	return resp, nil
}

// SetPermissions reemplaza los permisos de un usuario. Solo admin.
func (uc *AuthUseCase) SetPermissions(ctx context.Context, actor entity.Actor, userID string, in dto.SetPermissionsRequest) (*dto.UserResponse, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrPermissionDenied
	}
	perms, v := parsePermissions(in.Permissions)
	if err := v.Err(); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Permissions = perms
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetUser obtiene un usuario por ID.
func (uc *AuthUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ListUsers lista usuarios ordenados por email.
func (uc *AuthUseCase) ListUsers(ctx context.Context, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	list, err := uc.userRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func parsePermissions(in []string) ([]entity.Permission, domain.Violations) {
	var v domain.Violations
	out := make([]entity.Permission, 0, len(in))
	seen := make(map[entity.Permission]bool, len(in))
	for _, s := range in {
		p := entity.Permission(strings.TrimSpace(s))
		if !entity.ValidPermission(p) {
			v.Addf("permissions", "permiso desconocido %q", s)
			continue
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, v
}

func permissionStrings(perms []entity.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		Permissions: permissionStrings(u.Permissions),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
