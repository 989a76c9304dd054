package entity

import "time"

// Valid roles for User. BEHEERDER is the administrator role; names follow
// the Dutch terms used on the shop floor.
const (
	RoleBeheerder = "BEHEERDER"
	RolePlanner   = "PLANNER"
	RoleSales     = "SALES"
	RoleScanner   = "SCANNER"
	RoleGuest     = "GUEST"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch s {
	case RoleBeheerder, RolePlanner, RoleSales, RoleScanner, RoleGuest:
		return true
	}
	return false
}

// User represents a system user. Role is immutable once assigned.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Naam         string
	Role         string // BEHEERDER, PLANNER, SALES, SCANNER, GUEST
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
