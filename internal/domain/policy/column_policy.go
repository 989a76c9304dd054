// Package policy holds the column-permission policy for the order table:
// a pure mapping from column name to the roles allowed to edit it. It is
// the single source of truth, consumed by the API authorization checks
// and exported to clients, so server and UI can never disagree.
package policy

import "github.com/hgl-interieur/ordertrack-api/internal/domain/entity"

// LockColumn is the record-lock flag on an order ("slotje"). Only
// planning roles may toggle it.
const LockColumn = "slotje"

// PopupFields are the free-text instruction columns shown as popups at
// the production stations. Editable by planning roles only.
var PopupFields = []string{
	"zaag_instructie",
	"pers_instructie",
	"netto_zaag_instructie",
	"kantenband_instructie",
	"cnc_instructie",
	"pmt_instructie",
}

// SalesFields are editable by SALES in addition to the planning roles.
var SalesFields = []string{
	"project",
	"lever_datum",
	"opmerking",
	"inkoopordernummer",
}

// ScannerFields are the six production-stage columns, editable by SCANNER
// in addition to the planning roles.
var ScannerFields = []string{
	"zaag",
	"pers",
	"netto_zaag",
	"kantenband",
	"cnc_start",
	"pmt_start",
}

var (
	planningRoles = []string{entity.RoleBeheerder, entity.RolePlanner}
	salesRoles    = []string{entity.RoleBeheerder, entity.RolePlanner, entity.RoleSales}
	scannerRoles  = []string{entity.RoleBeheerder, entity.RolePlanner, entity.RoleScanner}
)

// EditableRoles returns the roles allowed to edit a column. Precedence,
// first match wins: slotje, popup-instruction fields, sales fields,
// scanner stage fields, then the planning-only default.
func EditableRoles(column string) []string {
	if column == LockColumn {
		return planningRoles
	}
	if IsPopupField(column) {
		return planningRoles
	}
	if contains(SalesFields, column) {
		return salesRoles
	}
	if contains(ScannerFields, column) {
		return scannerRoles
	}
	return planningRoles
}

// CanRoleEdit reports whether role may edit column. An empty or unknown
// role always yields false (fail-closed).
func CanRoleEdit(role, column string) bool {
	if role == "" || !entity.ValidRole(role) {
		return false
	}
	return contains(EditableRoles(column), role)
}

// IsPopupField reports whether column is one of the instruction popups.
func IsPopupField(column string) bool {
	return contains(PopupFields, column)
}

// IsStageField reports whether column is one of the production stages.
func IsStageField(column string) bool {
	return contains(ScannerFields, column)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
