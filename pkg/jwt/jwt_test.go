package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/hgl-interieur/ordertrack-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "ordertrack-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", "a@b.com", "PLANNER", testIssuer, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "PLANNER", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "u1", "a@b.com", "PLANNER", testIssuer, time.Hour)
	assert.Error(t, err, "an unsigned token must never be issued")
}

func TestParse_ExpiredToken(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", "a@b.com", "SCANNER", testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "expired token must be rejected")
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", "a@b.com", "SALES", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("a-completely-different-secret", tok)
	assert.Error(t, err)
}

// The 24h bearer token must expire ~24 hours from issuance.
func TestExpiry_TwentyFourHours(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "u1", "a@b.com", "PLANNER", testIssuer, 24*time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	want := time.Now().Add(24 * time.Hour)
	assert.WithinDuration(t, want, claims.ExpiresAt.Time, 5*time.Second)
}
