package entity

import "time"

// ColumnPermission is a persisted authorization grant for a role over a
// single named column of the order table. At most one record exists per
// (role, column) pair. Administered by BEHEERDER; read-only everywhere else.
type ColumnPermission struct {
	ID        string
	Role      string
	Column    string
	CanEdit   bool
	CanView   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
