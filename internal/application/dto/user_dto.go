package dto

import "time"

// RegisterRequest entrada para crear un usuario (password en texto, se hashea en use case).
type RegisterRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Name        string   `json:"name" validate:"omitempty,max=200"`
	Role        string   `json:"role" validate:"omitempty,oneof=admin optometrist cashier"`
	Permissions []string `json:"permissions,omitempty"` // vacío = permisos por defecto del rol
}

// SetPermissionsRequest body para PUT /api/users/:id/permissions.
type SetPermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT. IncompleteShift se informa para que el cliente
// decida reanudar, forzar el cierre o cancelar un turno interrumpido.
type LoginResponse struct {
	Token           string         `json:"token"`
	User            UserResponse   `json:"user"`
	IncompleteShift *ShiftResponse `json:"incomplete_shift,omitempty"`
}
