package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/application/usecase"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/metrics"
)

// OrderHandler handles the order table: listing, scan lookup,
// column-gated updates and the werkbon PDF.
type OrderHandler struct {
	uc      *usecase.OrderUseCase
	werkbon *usecase.WerkbonUseCase
	log     zerolog.Logger
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *usecase.OrderUseCase, werkbon *usecase.WerkbonUseCase, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, werkbon: werkbon, log: log}
}

// List godoc
// @Summary      List orders, newest delivery date first
// @Tags         orders
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}   dto.OrderResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list orders failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("order_id", id).Msg("get order failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create a production order
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Order data"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.VerkoopOrder == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "verkoop_order is required"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "verkoop_order already exists"})
		}
		h.log.Error().Err(err).Msg("create order failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Scan godoc
// @Summary      Resolve an order by its scanned order number
// @Tags         orders
// @Produce      json
// @Param        orderNumber  path  string  true  "verkoop_order"
// @Success      200  {object}  dto.ScanOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/orders/scan/{orderNumber} [get]
//
// NotFound and storage faults stay distinct signals, so a station can
// tell "re-scan, wrong code" apart from "system is down".
func (h *OrderHandler) Scan(c *fiber.Ctx) error {
	orderNumber := c.Params("orderNumber")
	if orderNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ORDER_NUMBER", Message: "order number is required"})
	}
	out, err := h.uc.Scan(orderNumber)
	if err != nil {
		metrics.ScanLookups.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Str("verkoop_order", orderNumber).Msg("scan lookup failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	if out == nil {
		metrics.ScanLookups.WithLabelValues("not_found").Inc()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	metrics.ScanLookups.WithLabelValues("found").Inc()
	return c.JSON(out)
}

// Update godoc
// @Summary      Update order columns (authorized per column)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderRequest  true  "column -> value"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	var changes dto.UpdateOrderRequest
	if err := c.BodyParser(&changes); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	role := GetRole(c)
	out, err := h.uc.Update(id, role, changes)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			metrics.EditDenied.WithLabelValues(role).Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "column not editable for this role"})
		case errors.Is(err, domain.ErrOrderLocked):
			metrics.EditDenied.WithLabelValues(role).Inc()
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ORDER_LOCKED", Message: "order is locked"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "verkoop_order already exists"})
		}
		h.log.Error().Err(err).Str("order_id", id).Msg("update order failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	return c.JSON(out)
}

// Werkbon godoc
// @Summary      Download the werkbon PDF for an order
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/werkbon [get]
func (h *OrderHandler) Werkbon(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	pdfBytes, err := h.werkbon.Generate(c.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("order_id", id).Msg("werkbon generation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	if pdfBytes == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="werkbon.pdf"`)
	return c.Send(pdfBytes)
}
