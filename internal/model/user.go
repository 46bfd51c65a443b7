package model

import "fmt"

// User describes the operator acting on the panel. Role is informational only.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Roles shown in the panel.
const (
	RoleAdministrator  = "Administrator"
	RoleWarehouseStaff = "Warehouse Staff"
	RoleProcurement    = "Procurement"
	RoleFinance        = "Finance"
	RoleViewer         = "Viewer"
)

// SystemUser is recorded when a mutation carries no acting user.
const SystemUser = "System"

// MinPasswordLength is the minimum operator password length.
const MinPasswordLength = 8

// ValidatePassword checks that a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// KnownRole reports whether role is one of the panel roles.
func KnownRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleWarehouseStaff, RoleProcurement, RoleFinance, RoleViewer:
		return true
	}
	return false
}
