package usecase

import (
	"context"

	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/repository"
)

// WerkbonGenerator renders the printable work ticket for one order.
// Implemented by the Maroto adapter in infrastructure/pdf.
type WerkbonGenerator interface {
	GenerateWerkbonPDF(ctx context.Context, order *entity.Order) ([]byte, error)
}

// WerkbonUseCase produces the A4 werkbon PDF that accompanies an order
// through the shop, barcode included so stations can scan it back.
type WerkbonUseCase struct {
	orderRepo repository.OrderRepository
	generator WerkbonGenerator
}

// NewWerkbonUseCase builds the werkbon use case.
func NewWerkbonUseCase(orderRepo repository.OrderRepository, generator WerkbonGenerator) *WerkbonUseCase {
	return &WerkbonUseCase{orderRepo: orderRepo, generator: generator}
}

// Generate renders the werkbon for an order. Returns (nil, nil) when the
// order does not exist.
func (uc *WerkbonUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return uc.generator.GenerateWerkbonPDF(ctx, order)
}
