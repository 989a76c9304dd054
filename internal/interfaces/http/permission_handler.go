package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/application/usecase"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
)

// PermissionHandler serves and administers the persisted column grants.
type PermissionHandler struct {
	uc  *usecase.PermissionUseCase
	log zerolog.Logger
}

// NewPermissionHandler builds the handler.
func NewPermissionHandler(uc *usecase.PermissionUseCase, log zerolog.Logger) *PermissionHandler {
	return &PermissionHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Column permissions for the caller's role
// @Tags         permissions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ColumnPermissionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "session required"})
	}
	out, err := h.uc.ListForUser(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "user record not found"})
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("list permissions failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Create or replace one (role, column) grant
// @Tags         permissions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertPermissionRequest  true  "role, column, canEdit, canView"
// @Success      200   {object}  dto.ColumnPermissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/permissions [put]
func (h *PermissionHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Upsert(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role and column are required, role must be known"})
		}
		h.log.Error().Err(err).Msg("upsert permission failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.JSON(out)
}
