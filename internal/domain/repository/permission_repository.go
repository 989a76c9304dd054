package repository

import "github.com/hgl-interieur/ordertrack-api/internal/domain/entity"

// ColumnPermissionRepository is the persistence port for the per-(role,
// column) permission grants.
type ColumnPermissionRepository interface {
	// ListByRole returns all grants for one role.
	ListByRole(role string) ([]*entity.ColumnPermission, error)
	// Get returns the grant for (role, column), or (nil, nil) when absent.
	Get(role, column string) (*entity.ColumnPermission, error)
	// Upsert creates or replaces the grant for (role, column).
	Upsert(perm *entity.ColumnPermission) error
}
