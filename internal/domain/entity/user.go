package entity

import (
	"slices"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleOptometrist = "optometrist"
	RoleCashier     = "cashier"
)

// Permission capacidad puntual otorgable a un usuario.
type Permission string

const (
	PermOrdersAbandon   Permission = "orders.abandon"
	PermOrdersDiscount  Permission = "orders.discount"
	PermShiftsManage    Permission = "shifts.manage"
	PermShiftsForceEnd  Permission = "shifts.force_end"
	PermInventoryManage Permission = "inventory.manage"
	PermPurchasesManage Permission = "purchases.manage"
	PermExpensesRecord  Permission = "expenses.record"
	PermUsersManage     Permission = "users.manage"
)

// AllPermissions catálogo completo (orden estable).
var AllPermissions = []Permission{
	PermOrdersAbandon, PermOrdersDiscount, PermShiftsManage, PermShiftsForceEnd,
	PermInventoryManage, PermPurchasesManage, PermExpensesRecord, PermUsersManage,
}

// DefaultPermissions permisos iniciales según rol (admin los tiene todos implícitamente).
func DefaultPermissions(role string) []Permission {
	switch role {
	case RoleCashier:
		return []Permission{PermOrdersDiscount, PermExpensesRecord}
	case RoleOptometrist:
		return []Permission{PermOrdersDiscount}
	}
	return nil
}

// ValidPermission informa si p pertenece al catálogo.
func ValidPermission(p Permission) bool {
	return slices.Contains(AllPermissions, p)
}

// User usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, optometrist, cashier
	Status       string // active, inactive
	Permissions  []Permission
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identidad del operador que ejecuta un caso de uso (viene del JWT).
type Actor struct {
	UserID      string
	Role        string
	Permissions []Permission
}

// Can informa si el actor tiene el permiso; admin los tiene todos.
func (a Actor) Can(p Permission) bool {
	if a.Role == RoleAdmin {
		return true
	}
	return slices.Contains(a.Permissions, p)
}
