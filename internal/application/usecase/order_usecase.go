package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/policy"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/repository"
)

// OrderUseCase order listing, scan lookup, creation and column-gated
// updates.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	permRepo  repository.ColumnPermissionRepository
}

// NewOrderUseCase builds the order use case.
func NewOrderUseCase(orderRepo repository.OrderRepository, permRepo repository.ColumnPermissionRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, permRepo: permRepo}
}

// List returns full order records sorted by lever_datum descending. The
// slice is never nil so an empty table serializes as [].
func (uc *OrderUseCase) List(limit, offset int) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o))
	}
	return items, nil
}

// GetByID returns one order, or (nil, nil) when absent.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	return toOrderResponse(o), nil
}

// Create persists a new production order.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	now := time.Now()
	o := &entity.Order{
		ID:           uuid.New().String(),
		VerkoopOrder: in.VerkoopOrder,
		Project:      in.Project,
		Debiteur:     in.Debiteur,
		ArtikelType:  in.ArtikelType,
		Materiaal:    in.Materiaal,
		Aantal:       in.Aantal,
		LengteMM:     in.LengteMM,
		BreedteMM:    in.BreedteMM,
		LeverDatum:   in.LeverDatum,
		Opmerking:    in.Opmerking,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.orderRepo.Create(o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// Scan resolves an order by its business order number and returns the
// fixed scan projection, or (nil, nil) when no order matches. The
// projection deliberately excludes everything the scanning station does
// not need.
func (uc *OrderUseCase) Scan(verkoopOrder string) (*dto.ScanOrderResponse, error) {
	o, err := uc.orderRepo.GetByVerkoopOrder(verkoopOrder)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	return &dto.ScanOrderResponse{
		ID:           o.ID,
		VerkoopOrder: o.VerkoopOrder,
		Project:      o.Project,
		Debiteur:     o.Debiteur,
		ArtikelType:  o.ArtikelType,
		Materiaal:    o.Materiaal,
		Zaag:         o.Zaag,
		Pers:         o.Pers,
		NettoZaag:    o.NettoZaag,
		Kantenband:   o.Kantenband,
		CNCStart:     o.CNCStart,
		PMTStart:     o.PMTStart,
	}, nil
}

// Update applies a partial column update on behalf of role. Every
// submitted column is authorized before anything is written: the static
// policy is the ceiling, and a persisted grant with can_edit=false
// revokes on top of it. A locked order (slotje) rejects edits from
// non-planning roles. Returns (nil, nil) when the order does not exist.
func (uc *OrderUseCase) Update(id, role string, changes dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if len(changes) == 0 {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	if o.Slotje && role != entity.RoleBeheerder && role != entity.RolePlanner {
		return nil, domain.ErrOrderLocked
	}
	for column := range changes {
		allowed, err := uc.canEdit(role, column)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: column %s", domain.ErrForbidden, column)
		}
	}
	for column, value := range changes {
		if err := applyColumn(o, column, value); err != nil {
			return nil, err
		}
	}
	o.UpdatedAt = time.Now()
	if err := uc.orderRepo.Update(o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// canEdit combines the static policy with the persisted grant table. The
// static policy decides; an explicit can_edit=false row revokes further.
func (uc *OrderUseCase) canEdit(role, column string) (bool, error) {
	if !policy.CanRoleEdit(role, column) {
		return false, nil
	}
	grant, err := uc.permRepo.Get(role, column)
	if err != nil {
		return false, err
	}
	if grant != nil && !grant.CanEdit {
		return false, nil
	}
	return true, nil
}

// applyColumn writes one column value onto the order, decoding the JSON
// value per column kind.
func applyColumn(o *entity.Order, column string, value any) error {
	if f := o.StageField(column); f != nil {
		ts, err := parseNullableTime(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, column, err)
		}
		*f = ts
		return nil
	}
	switch column {
	case policy.LockColumn:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: slotje must be a boolean", domain.ErrInvalidInput)
		}
		o.Slotje = b
	case "lever_datum":
		ts, err := parseNullableTime(value)
		if err != nil {
			return fmt.Errorf("%w: lever_datum: %v", domain.ErrInvalidInput, err)
		}
		o.LeverDatum = ts
	case "aantal":
		n, ok := value.(float64) // JSON numbers decode to float64
		if !ok || n < 0 {
			return fmt.Errorf("%w: aantal must be a non-negative number", domain.ErrInvalidInput)
		}
		o.Aantal = int(n)
	case "lengte_mm":
		d, err := parseNullableDecimal(value)
		if err != nil {
			return fmt.Errorf("%w: lengte_mm: %v", domain.ErrInvalidInput, err)
		}
		o.LengteMM = d
	case "breedte_mm":
		d, err := parseNullableDecimal(value)
		if err != nil {
			return fmt.Errorf("%w: breedte_mm: %v", domain.ErrInvalidInput, err)
		}
		o.BreedteMM = d
	case "verkoop_order":
		// The business key can be corrected by planning, but never
		// blanked. Uniqueness is enforced by the store (ErrDuplicate).
		s, ok := value.(string)
		if !ok || s == "" {
			return fmt.Errorf("%w: verkoop_order must be a non-empty string", domain.ErrInvalidInput)
		}
		o.VerkoopOrder = s
	case "project":
		return setString(&o.Project, column, value)
	case "debiteur":
		return setString(&o.Debiteur, column, value)
	case "artikel_type":
		return setString(&o.ArtikelType, column, value)
	case "materiaal":
		return setString(&o.Materiaal, column, value)
	case "opmerking":
		return setString(&o.Opmerking, column, value)
	case "inkoopordernummer":
		return setString(&o.Inkoopordernummer, column, value)
	case "zaag_instructie":
		return setString(&o.ZaagInstructie, column, value)
	case "pers_instructie":
		return setString(&o.PersInstructie, column, value)
	case "netto_zaag_instructie":
		return setString(&o.NettoZaagInstructie, column, value)
	case "kantenband_instructie":
		return setString(&o.KantenbandInstructie, column, value)
	case "cnc_instructie":
		return setString(&o.CNCInstructie, column, value)
	case "pmt_instructie":
		return setString(&o.PMTInstructie, column, value)
	default:
		// Closed field set: unknown columns are rejected, not stored.
		return fmt.Errorf("%w: unknown column %s", domain.ErrInvalidInput, column)
	}
	return nil
}

func setString(dst *string, column string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", domain.ErrInvalidInput, column)
	}
	*dst = s
	return nil
}

func parseNullableTime(value any) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected RFC3339 timestamp or null")
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Date-only values come from the planning UI.
		ts, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
	}
	return &ts, nil
}

func parseNullableDecimal(value any) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case float64:
		d := decimal.NewFromFloat(v)
		return &d, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
	return nil, fmt.Errorf("expected number, string or null")
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		VerkoopOrder: o.VerkoopOrder,
		Project:      o.Project,
		Debiteur:     o.Debiteur,
		ArtikelType:  o.ArtikelType,
		Materiaal:    o.Materiaal,
		Aantal:       o.Aantal,
		LengteMM:     o.LengteMM,
		BreedteMM:    o.BreedteMM,
		Zaag:         o.Zaag,
		Pers:         o.Pers,
		NettoZaag:    o.NettoZaag,
		Kantenband:   o.Kantenband,
		CNCStart:     o.CNCStart,
		PMTStart:     o.PMTStart,
		Slotje:       o.Slotje,
		LeverDatum:   o.LeverDatum,
		Opmerking:    o.Opmerking,
		Inkoopordernummer:    o.Inkoopordernummer,
		ZaagInstructie:       o.ZaagInstructie,
		PersInstructie:       o.PersInstructie,
		NettoZaagInstructie:  o.NettoZaagInstructie,
		KantenbandInstructie: o.KantenbandInstructie,
		CNCInstructie:        o.CNCInstructie,
		PMTInstructie:        o.PMTInstructie,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}
