package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hgl-interieur/ordertrack-api/internal/application/auth"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
	apphttp "github.com/hgl-interieur/ordertrack-api/internal/interfaces/http"
	pkgjwt "github.com/hgl-interieur/ordertrack-api/pkg/jwt"
)

type stubUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *stubUserRepo) Create(u *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *stubUserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *stubUserRepo) Update(u *entity.User) error                  { return nil }
func (r *stubUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Delete(id string) error                       { return nil }

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func authApp(secret string) *fiber.App {
	uc := auth.NewAuthUseCase(&stubUserRepo{byEmail: map[string]*entity.User{}}, auth.JWTConfig{
		Secret:     secret,
		ExpMinutes: 60,
		BearerTTL:  24 * time.Hour,
		Issuer:     testIssuer,
	})
	h := apphttp.NewAuthHandler(uc, zerolog.Nop())

	app := fiber.New()
	app.Post("/api/auth/logout", h.Logout)
	app.Get("/api/auth/guest", h.Guest)
	app.Get("/api/get-token", apphttp.AuthMiddleware(testJWTSecret), h.GetToken)
	app.Post("/api/auth/login", h.Login)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_ClearsAllSixCookies(t *testing.T) {
	app := authApp(testJWTSecret)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("x-logout-flow"),
		"the edge middleware marker must be set")

	cookies := resp.Cookies()
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	for _, name := range apphttp.LogoutCookies {
		ck, ok := byName[name]
		require.True(t, ok, "cookie %s must be cleared", name)
		assert.Empty(t, ck.Value, name)
		assert.True(t, ck.Expires.Before(time.Now()), "%s must be expired", name)
		assert.Equal(t, "/", ck.Path, name)
	}

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body["success"])
}

// Clearing cookies that were never set is not an error: logout always
// returns 200.
func TestLogout_SucceedsWithoutPriorSession(t *testing.T) {
	app := authApp(testJWTSecret)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Guest mode
// ──────────────────────────────────────────────────────────────────────────────

func TestGuest_SetsGuestCookieAndSession(t *testing.T) {
	app := authApp(testJWTSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/guest", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var found *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.GuestCookie {
			found = ck
		}
	}
	require.NotNil(t, found, "guest_mode cookie must be set")
	assert.Equal(t, "true", found.Value)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), found.Expires, time.Minute)

	var body struct {
		Success      bool `json:"success"`
		GuestSession struct {
			Role string `json:"role"`
		} `json:"guestSession"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "GUEST", body.GuestSession.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bearer-token issuance
// ──────────────────────────────────────────────────────────────────────────────

func TestGetToken_IssuesDecodable24hToken(t *testing.T) {
	app := authApp(testJWTSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/get-token", nil)
	req.Header.Set("Authorization", tokenForRole(t, "PLANNER"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	claims, err := pkgjwt.Parse(testJWTSecret, body.Token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "PLANNER", claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGetToken_WithoutSession_Returns401(t *testing.T) {
	app := authApp(testJWTSecret)

	req := httptest.NewRequest(http.MethodGet, "/api/get-token", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Without a signing secret no token may ever leave the server, valid
// session or not.
func TestGetToken_MissingSecret_Returns500(t *testing.T) {
	app := authApp("") // issuance secret absent; session parsing uses its own

	req := httptest.NewRequest(http.MethodGet, "/api/get-token", nil)
	req.Header.Set("Authorization", tokenForRole(t, "PLANNER"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "SERVER_CONFIG", body["code"])
	assert.NotContains(t, body, "token")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_SetsSessionCookie(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("wachtwoord123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &stubUserRepo{byEmail: map[string]*entity.User{
		"p@hgl.nl": {ID: "u1", Email: "p@hgl.nl", PasswordHash: string(hash), Role: entity.RolePlanner, Status: "active"},
	}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, BearerTTL: 24 * time.Hour, Issuer: testIssuer,
	})
	h := apphttp.NewAuthHandler(uc, zerolog.Nop())
	app := fiber.New()
	app.Post("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, map[string]string{"email": "p@hgl.nl", "password": "wachtwoord123"}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == apphttp.SessionCookie {
			sessionCookie = ck
		}
	}
	require.NotNil(t, sessionCookie)
	claims, err := pkgjwt.Parse(testJWTSecret, sessionCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "PLANNER", claims.Role)
}

func TestLogin_WrongPassword_Returns401(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("wachtwoord123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo := &stubUserRepo{byEmail: map[string]*entity.User{
		"p@hgl.nl": {ID: "u1", Email: "p@hgl.nl", PasswordHash: string(hash), Role: entity.RolePlanner, Status: "active"},
	}}
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	})
	h := apphttp.NewAuthHandler(uc, zerolog.Nop())
	app := fiber.New()
	app.Post("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		jsonBody(t, map[string]string{"email": "p@hgl.nl", "password": "fout"}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
