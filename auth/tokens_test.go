package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopora/ecommerce-api/config"
	"github.com/shopora/ecommerce-api/models"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:  "test-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
}

func TestIssuePairAndParse(t *testing.T) {
	cfg := testAuthConfig()
	user := &models.User{ID: 7, Username: "maria"}

	pair, err := IssuePair(cfg, user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := ParseToken(cfg.JWTSecret, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, "access", claims["token_type"])
}

func TestRefreshAccess(t *testing.T) {
	cfg := testAuthConfig()
	user := &models.User{ID: 3, Username: "omar"}
	pair, err := IssuePair(cfg, user)
	require.NoError(t, err)

	access, userID, err := RefreshAccess(cfg, pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)

	claims, err := ParseToken(cfg.JWTSecret, access)
	require.NoError(t, err)
	assert.Equal(t, "access", claims["token_type"])
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	cfg := testAuthConfig()
	pair, err := IssuePair(cfg, &models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	_, _, err = RefreshAccess(cfg, pair.Access)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := testAuthConfig()
	pair, err := IssuePair(cfg, &models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	_, err = ParseToken("other-secret", pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessTTL = -time.Minute
	pair, err := IssuePair(cfg, &models.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	_, err = ParseToken(cfg.JWTSecret, pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
