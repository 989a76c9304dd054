package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `
	id, verkoop_order, project, debiteur, artikel_type, materiaal, aantal,
	lengte_mm, breedte_mm,
	zaag, pers, netto_zaag, kantenband, cnc_start, pmt_start,
	slotje, lever_datum, opmerking, inkoopordernummer,
	zaag_instructie, pers_instructie, netto_zaag_instructie,
	kantenband_instructie, cnc_instructie, pmt_instructie,
	created_at, updated_at`

// OrderRepo implements the OrderRepository port on PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the persistence adapter for orders. Pass a
// pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persists a new order. verkoop_order carries a unique index;
// a duplicate yields ErrDuplicate.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.VerkoopOrder, o.Project, o.Debiteur, o.ArtikelType, o.Materiaal, o.Aantal,
		o.LengteMM, o.BreedteMM,
		o.Zaag, o.Pers, o.NettoZaag, o.Kantenband, o.CNCStart, o.PMTStart,
		o.Slotje, o.LeverDatum, o.Opmerking, o.Inkoopordernummer,
		o.ZaagInstructie, o.PersInstructie, o.NettoZaagInstructie,
		o.KantenbandInstructie, o.CNCInstructie, o.PMTInstructie,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID fetches an order by ID, (nil, nil) when absent.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.scanOne(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByVerkoopOrder resolves an order by its business order number. If a
// duplicate slipped past the unique index, the most recently created row
// wins (explicit tie-break rather than arbitrary first-match).
func (r *OrderRepo) GetByVerkoopOrder(verkoopOrder string) (*entity.Order, error) {
	return r.scanOne(`
		SELECT `+orderColumns+` FROM orders
		WHERE verkoop_order = $1
		ORDER BY created_at DESC LIMIT 1`, verkoopOrder)
}

func (r *OrderRepo) scanOne(query string, arg any) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update saves the full order row.
func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders SET
			verkoop_order = $2, project = $3, debiteur = $4, artikel_type = $5,
			materiaal = $6, aantal = $7, lengte_mm = $8, breedte_mm = $9,
			zaag = $10, pers = $11, netto_zaag = $12, kantenband = $13,
			cnc_start = $14, pmt_start = $15,
			slotje = $16, lever_datum = $17, opmerking = $18, inkoopordernummer = $19,
			zaag_instructie = $20, pers_instructie = $21, netto_zaag_instructie = $22,
			kantenband_instructie = $23, cnc_instructie = $24, pmt_instructie = $25,
			updated_at = $26
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.VerkoopOrder, o.Project, o.Debiteur, o.ArtikelType,
		o.Materiaal, o.Aantal, o.LengteMM, o.BreedteMM,
		o.Zaag, o.Pers, o.NettoZaag, o.Kantenband, o.CNCStart, o.PMTStart,
		o.Slotje, o.LeverDatum, o.Opmerking, o.Inkoopordernummer,
		o.ZaagInstructie, o.PersInstructie, o.NettoZaagInstructie,
		o.KantenbandInstructie, o.CNCInstructie, o.PMTInstructie,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

// List returns orders sorted by lever_datum descending, NULLs last, with
// pagination.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		ORDER BY lever_datum DESC NULLS LAST, created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.VerkoopOrder, &o.Project, &o.Debiteur, &o.ArtikelType, &o.Materiaal, &o.Aantal,
		&o.LengteMM, &o.BreedteMM,
		&o.Zaag, &o.Pers, &o.NettoZaag, &o.Kantenband, &o.CNCStart, &o.PMTStart,
		&o.Slotje, &o.LeverDatum, &o.Opmerking, &o.Inkoopordernummer,
		&o.ZaagInstructie, &o.PersInstructie, &o.NettoZaagInstructie,
		&o.KantenbandInstructie, &o.CNCInstructie, &o.PMTInstructie,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
