package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hgl-interieur/ordertrack-api/internal/application/auth"
	"github.com/hgl-interieur/ordertrack-api/internal/application/dto"
	"github.com/hgl-interieur/ordertrack-api/internal/domain"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
)

// LogoutCookies is the fixed list of cookies cleared on logout: our own
// session cookie plus the auth-provider session/CSRF cookies in both
// plain and secure-prefixed variants.
var LogoutCookies = []string{
	"token",
	"next-auth.session-token",
	"next-auth.csrf-token",
	"next-auth.callback-url",
	"__Secure-next-auth.session-token",
	"__Secure-next-auth.csrf-token",
}

// LogoutFlowHeader marks responses of an in-flight logout so edge
// middleware can tell "mid-logout" apart from plain unauthenticated
// requests and not redirect before the cookies finish clearing.
const LogoutFlowHeader = "x-logout-flow"

// GuestCookie marks a browser session as guest mode.
const GuestCookie = "guest_mode"

// AuthHandler handles login, logout, guest mode and token issuance.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email and password are required"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "account inactive"})
		}
		h.log.Error().Err(err).Str("email", in.Email).Msg("login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	// Browser clients get the session as a cookie as well.
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    out.Token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Register godoc
// @Summary      Create a user (BEHEERDER only)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email, password and role are required"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password must be at least 8 characters"})
	}
	user, err := h.uc.Register(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email is already registered"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unknown role"})
		}
		h.log.Error().Err(err).Msg("register failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetToken godoc
// @Summary      Issue a 24h bearer token from the active session
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/get-token [get]
func (h *AuthHandler) GetToken(c *fiber.Ctx) error {
	token, err := h.uc.IssueBearerToken(GetUserID(c), GetEmail(c), GetRole(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "session required"})
		}
		if errors.Is(err, domain.ErrServerConfiguration) {
			h.log.Error().Msg("bearer token requested but no signing secret is configured")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SERVER_CONFIG", Message: "internal error"})
		}
		h.log.Error().Err(err).Msg("token issuance failed")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal error"})
	}
	return c.JSON(dto.TokenResponse{Token: token})
}

// Logout godoc
// @Summary      Log out: clear session cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/auth/logout [post]
//
// Logout never fails: clearing a cookie that was never set is a no-op.
// Each cookie is overwritten with an empty value and a past expiry on the
// root path, and the logout-flow marker header is set for the edge.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	expired := time.Now().Add(-24 * time.Hour)
	for _, name := range LogoutCookies {
		c.Cookie(&fiber.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			Expires: expired,
		})
	}
	c.Set(LogoutFlowHeader, "true")
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Guest godoc
// @Summary      Enter guest mode (read-only)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.GuestResponse
// @Router       /api/auth/guest [get]
func (h *AuthHandler) Guest(c *fiber.Ctx) error {
	expires := time.Now().Add(24 * time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     GuestCookie,
		Value:    "true",
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.GuestResponse{
		Success: true,
		GuestSession: dto.GuestSession{
			Role:      entity.RoleGuest,
			ExpiresAt: expires,
		},
	})
}
