package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/repository"
)

var _ repository.ColumnPermissionRepository = (*ColumnPermissionRepo)(nil)

// ColumnPermissionRepo implements the ColumnPermissionRepository port on
// PostgreSQL. The table carries a unique index on (role, "column").
type ColumnPermissionRepo struct {
	q Querier
}

// NewColumnPermissionRepository builds the persistence adapter for the
// permission grants.
func NewColumnPermissionRepository(q Querier) *ColumnPermissionRepo {
	return &ColumnPermissionRepo{q: q}
}

// ListByRole returns all grants for one role.
func (r *ColumnPermissionRepo) ListByRole(role string) ([]*entity.ColumnPermission, error) {
	query := `
		SELECT id, role, "column", can_edit, can_view, created_at, updated_at
		FROM column_permissions WHERE role = $1 ORDER BY "column"`
	rows, err := r.q.Query(context.Background(), query, role)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ColumnPermission
	for rows.Next() {
		var p entity.ColumnPermission
		if err := rows.Scan(&p.ID, &p.Role, &p.Column, &p.CanEdit, &p.CanView, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Get fetches the grant for (role, column), (nil, nil) when absent.
func (r *ColumnPermissionRepo) Get(role, column string) (*entity.ColumnPermission, error) {
	query := `
		SELECT id, role, "column", can_edit, can_view, created_at, updated_at
		FROM column_permissions WHERE role = $1 AND "column" = $2`
	var p entity.ColumnPermission
	err := r.q.QueryRow(context.Background(), query, role, column).Scan(
		&p.ID, &p.Role, &p.Column, &p.CanEdit, &p.CanView, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// Upsert creates or replaces the grant for (role, column).
func (r *ColumnPermissionRepo) Upsert(perm *entity.ColumnPermission) error {
	query := `
		INSERT INTO column_permissions (id, role, "column", can_edit, can_view, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (role, "column") DO UPDATE SET
			can_edit = EXCLUDED.can_edit,
			can_view = EXCLUDED.can_view,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		perm.ID, perm.Role, perm.Column, perm.CanEdit, perm.CanView,
		perm.CreatedAt, perm.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert permission: %w", err)
	}
	return nil
}
