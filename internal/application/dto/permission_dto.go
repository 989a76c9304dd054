package dto

// ColumnPermissionResponse one persisted (role, column) grant.
type ColumnPermissionResponse struct {
	Role    string `json:"role"`
	Column  string `json:"column"`
	CanEdit bool   `json:"canEdit"`
	CanView bool   `json:"canView"`
}

// UpsertPermissionRequest admin input to create or replace one grant.
type UpsertPermissionRequest struct {
	Role    string `json:"role" validate:"required,oneof=BEHEERDER PLANNER SALES SCANNER GUEST"`
	Column  string `json:"column" validate:"required,max=100"`
	CanEdit bool   `json:"canEdit"`
	CanView bool   `json:"canView"`
}
