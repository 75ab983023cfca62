package constants

import "fmt"

const (
	RoleCaptura = "captura"
	RoleAdmin   = "admin"
)

// Plantillas de mensajes de error por rol
const (
	ErrOnlyAdminsCanAccess  = "❌ Solo un administrador puede acceder a %s."
	ErrOnlyStaffCanAccess   = "❌ Solo usuarios de captura o administradores pueden acceder a %s."
	ErrInactiveAccount      = "Tu cuenta no está activa. Contacta al administrador."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleCaptura,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
