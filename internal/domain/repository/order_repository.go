package repository

import "github.com/hgl-interieur/ordertrack-api/internal/domain/entity"

// OrderRepository is the persistence port for production orders.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetByVerkoopOrder resolves an order by its business order number
	// (exact match). If duplicates exist the most recently created row
	// wins. Returns (nil, nil) when no order matches.
	GetByVerkoopOrder(verkoopOrder string) (*entity.Order, error)
	Update(order *entity.Order) error
	// List returns orders sorted by lever_datum descending (NULLs last).
	List(limit, offset int) ([]*entity.Order, error)
}
