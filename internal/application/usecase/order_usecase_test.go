package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/application/usecase"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders  map[string]*entity.Order // by ID
	byVO    map[string]*entity.Order // by verkoop_order
	failing bool
	updated *entity.Order
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*entity.Order{}, byVO: map[string]*entity.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
		r.byVO[o.VerkoopOrder] = o
	}
	return r
}

var errStorage = errors.New("storage fault")

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	if r.failing {
		return errStorage
	}
	r.orders[o.ID] = o
	r.byVO[o.VerkoopOrder] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if r.failing {
		return nil, errStorage
	}
	return r.orders[id], nil
}

func (r *fakeOrderRepo) GetByVerkoopOrder(vo string) (*entity.Order, error) {
	if r.failing {
		return nil, errStorage
	}
	return r.byVO[vo], nil
}

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	if r.failing {
		return errStorage
	}
	r.updated = o
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	if r.failing {
		return nil, errStorage
	}
	var out []*entity.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

type fakePermRepo struct {
	grants map[string]*entity.ColumnPermission // key role|column
}

func newFakePermRepo(grants ...*entity.ColumnPermission) *fakePermRepo {
	r := &fakePermRepo{grants: map[string]*entity.ColumnPermission{}}
	for _, g := range grants {
		r.grants[g.Role+"|"+g.Column] = g
	}
	return r
}

func (r *fakePermRepo) ListByRole(role string) ([]*entity.ColumnPermission, error) {
	var out []*entity.ColumnPermission
	for _, g := range r.grants {
		if g.Role == role {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakePermRepo) Get(role, column string) (*entity.ColumnPermission, error) {
	return r.grants[role+"|"+column], nil
}

func (r *fakePermRepo) Upsert(p *entity.ColumnPermission) error {
	r.grants[p.Role+"|"+p.Column] = p
	return nil
}

func testOrder() *entity.Order {
	pers := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	return &entity.Order{
		ID:           "o1",
		VerkoopOrder: "SO-1001",
		Project:      "Keuken De Vries",
		Debiteur:     "De Vries Interieurs",
		ArtikelType:  "frontpaneel",
		Materiaal:    "eiken fineer 18mm",
		Aantal:       12,
		Pers:         &pers,
		Opmerking:    "spoed",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Scan lookup
// ──────────────────────────────────────────────────────────────────────────────

func TestScan_ReturnsProjection(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), newFakePermRepo())

	out, err := uc.Scan("SO-1001")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "o1", out.ID)
	assert.Equal(t, "SO-1001", out.VerkoopOrder)
	assert.Equal(t, "Keuken De Vries", out.Project)
	assert.Equal(t, "De Vries Interieurs", out.Debiteur)
	assert.Equal(t, "frontpaneel", out.ArtikelType)
	assert.Equal(t, "eiken fineer 18mm", out.Materiaal)
	require.NotNil(t, out.Pers)
	assert.Nil(t, out.Zaag)
}

func TestScan_NotFound_IsNilNotError(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), newFakePermRepo())

	out, err := uc.Scan("NONEXISTENT")
	require.NoError(t, err, "absence is not a storage fault")
	assert.Nil(t, out)
}

func TestScan_StorageFault_IsDistinctFromNotFound(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	repo.failing = true
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	out, err := uc.Scan("SO-1001")
	assert.Nil(t, out)
	assert.ErrorIs(t, err, errStorage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Column-gated update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ScannerStampsStage(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	out, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"zaag": "2026-03-11T08:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NotNil(t, out.Zaag)
	assert.Equal(t, 2026, out.Zaag.Year())
	require.NotNil(t, repo.updated, "the change must reach storage")
}

func TestUpdate_ScannerCannotEditSalesColumn(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	_, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"project": "iets anders",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, repo.updated, "nothing may be written on a denied update")
}

func TestUpdate_SalesEditsOwnColumns(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	out, err := uc.Update("o1", entity.RoleSales, dto.UpdateOrderRequest{
		"opmerking":         "klant gebeld",
		"inkoopordernummer": "IO-555",
	})
	require.NoError(t, err)
	assert.Equal(t, "klant gebeld", out.Opmerking)
	assert.Equal(t, "IO-555", out.Inkoopordernummer)
}

func TestUpdate_SalesCannotToggleSlotje(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), newFakePermRepo())

	_, err := uc.Update("o1", entity.RoleSales, dto.UpdateOrderRequest{"slotje": true})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// A mixed batch where one column is denied must be rejected atomically.
func TestUpdate_MixedBatchDeniedAtomically(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	_, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"pers":    "2026-03-12T10:00:00Z",
		"project": "niet toegestaan",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, repo.updated)
}

// A persisted grant with can_edit=false revokes what the static policy
// would otherwise allow.
func TestUpdate_PersistedGrantRevokes(t *testing.T) {
	perms := newFakePermRepo(&entity.ColumnPermission{
		Role: entity.RoleScanner, Column: "pers", CanEdit: false, CanView: true,
	})
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), perms)

	_, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"pers": "2026-03-12T10:00:00Z",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// A persisted grant can never widen the static policy.
func TestUpdate_PersistedGrantCannotWiden(t *testing.T) {
	perms := newFakePermRepo(&entity.ColumnPermission{
		Role: entity.RoleSales, Column: "slotje", CanEdit: true, CanView: true,
	})
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), perms)

	_, err := uc.Update("o1", entity.RoleSales, dto.UpdateOrderRequest{"slotje": true})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdate_LockedOrderRejectsScanner(t *testing.T) {
	o := testOrder()
	o.Slotje = true
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(o), newFakePermRepo())

	_, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"zaag": "2026-03-11T08:00:00Z",
	})
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
}

func TestUpdate_LockedOrderStillEditableByPlanner(t *testing.T) {
	o := testOrder()
	o.Slotje = true
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(o), newFakePermRepo())

	out, err := uc.Update("o1", entity.RolePlanner, dto.UpdateOrderRequest{"slotje": false})
	require.NoError(t, err)
	assert.False(t, out.Slotje)
}

// Planning can correct the business order number; it can never be
// blanked, and non-planning roles cannot touch it.
func TestUpdate_PlannerCorrectsVerkoopOrder(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	out, err := uc.Update("o1", entity.RolePlanner, dto.UpdateOrderRequest{
		"verkoop_order": "SO-1001-B",
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-1001-B", out.VerkoopOrder)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "SO-1001-B", repo.updated.VerkoopOrder)
}

func TestUpdate_VerkoopOrderCannotBeBlanked(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), newFakePermRepo())

	_, err := uc.Update("o1", entity.RolePlanner, dto.UpdateOrderRequest{
		"verkoop_order": "",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ScannerCannotRenameVerkoopOrder(t *testing.T) {
	repo := newFakeOrderRepo(testOrder())
	uc := usecase.NewOrderUseCase(repo, newFakePermRepo())

	_, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"verkoop_order": "SO-9999",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, repo.updated)
}

func TestUpdate_UnknownColumnRejected(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), newFakePermRepo())

	_, err := uc.Update("o1", entity.RoleBeheerder, dto.UpdateOrderRequest{
		"geheime_kolom": "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_OrderAbsent(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(), newFakePermRepo())

	out, err := uc.Update("missing", entity.RolePlanner, dto.UpdateOrderRequest{"opmerking": "x"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestUpdate_StageClearedWithNull(t *testing.T) {
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(testOrder()), newFakePermRepo())

	out, err := uc.Update("o1", entity.RolePlanner, dto.UpdateOrderRequest{"pers": nil})
	require.NoError(t, err)
	assert.Nil(t, out.Pers, "a null value clears a stage timestamp")
}

// Stages may be stamped out of order: CNC before sawing is accepted.
func TestUpdate_NoWorkflowSequencing(t *testing.T) {
	o := testOrder()
	o.Pers = nil
	uc := usecase.NewOrderUseCase(newFakeOrderRepo(o), newFakePermRepo())

	out, err := uc.Update("o1", entity.RoleScanner, dto.UpdateOrderRequest{
		"cnc_start": "2026-03-11T08:00:00Z",
	})
	require.NoError(t, err)
	assert.NotNil(t, out.CNCStart)
	assert.Nil(t, out.Zaag)
}
