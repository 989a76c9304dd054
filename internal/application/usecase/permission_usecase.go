package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/repository"
)

// PermissionUseCase read and admin upsert of the persisted per-(role,
// column) grants.
type PermissionUseCase struct {
	permRepo repository.ColumnPermissionRepository
	userRepo repository.UserRepository
}

// NewPermissionUseCase builds the permission use case.
func NewPermissionUseCase(permRepo repository.ColumnPermissionRepository, userRepo repository.UserRepository) *PermissionUseCase {
	return &PermissionUseCase{permRepo: permRepo, userRepo: userRepo}
}

// ListForUser returns the grants scoped to the role of the given user.
// The user record is re-read so a deleted account cannot keep using a
// stale session; ErrUserNotFound in that case.
func (uc *PermissionUseCase) ListForUser(userID string) ([]dto.ColumnPermissionResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	perms, err := uc.permRepo.ListByRole(user.Role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColumnPermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, dto.ColumnPermissionResponse{
			Role:    p.Role,
			Column:  p.Column,
			CanEdit: p.CanEdit,
			CanView: p.CanView,
		})
	}
	return out, nil
}

// Upsert creates or replaces one grant. BEHEERDER-only; the handler
// enforces the role, this validates the input.
func (uc *PermissionUseCase) Upsert(in dto.UpsertPermissionRequest) (*dto.ColumnPermissionResponse, error) {
	if !entity.ValidRole(in.Role) || in.Column == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	perm := &entity.ColumnPermission{
		ID:        uuid.New().String(),
		Role:      in.Role,
		Column:    in.Column,
		CanEdit:   in.CanEdit,
		CanView:   in.CanView,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.permRepo.Upsert(perm); err != nil {
		return nil, err
	}
	return &dto.ColumnPermissionResponse{
		Role:    perm.Role,
		Column:  perm.Column,
		CanEdit: perm.CanEdit,
		CanView: perm.CanView,
	}, nil
}
