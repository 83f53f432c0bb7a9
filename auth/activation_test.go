package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopora/ecommerce-api/models"
)

const tokenSecret = "activation-secret"

func TestActivationTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: 11, IsActive: false, PasswordHash: "h1"}
	token := ActivationToken(tokenSecret, user)
	assert.True(t, CheckActivationToken(tokenSecret, user, token, time.Hour))
}

func TestActivationTokenSingleUse(t *testing.T) {
	user := &models.User{ID: 11, IsActive: false, PasswordHash: "h1"}
	token := ActivationToken(tokenSecret, user)

	// Activation flips the flag, which changes the signed state.
	user.IsActive = true
	assert.False(t, CheckActivationToken(tokenSecret, user, token, time.Hour))
}

func TestActivationTokenTampered(t *testing.T) {
	user := &models.User{ID: 11, IsActive: false, PasswordHash: "h1"}
	token := ActivationToken(tokenSecret, user)

	tampered := token[:len(token)-1] + "x"
	assert.False(t, CheckActivationToken(tokenSecret, user, tampered, time.Hour))
	assert.False(t, CheckActivationToken(tokenSecret, user, "garbage", time.Hour))
	assert.False(t, CheckActivationToken("wrong-secret", user, token, time.Hour))
}

func TestActivationTokenExpired(t *testing.T) {
	user := &models.User{ID: 11, IsActive: false, PasswordHash: "h1"}
	token := makeToken(tokenSecret, activationState(user), time.Now().Add(-2*time.Hour))
	assert.False(t, CheckActivationToken(tokenSecret, user, token, time.Hour))
}

func TestResetTokenInvalidatedByPasswordChange(t *testing.T) {
	user := &models.User{ID: 4, PasswordHash: "old-hash"}
	token := ResetToken(tokenSecret, user)
	require.True(t, CheckResetToken(tokenSecret, user, token, time.Hour))

	user.PasswordHash = "new-hash"
	assert.False(t, CheckResetToken(tokenSecret, user, token, time.Hour))
}

func TestEncodeDecodeUID(t *testing.T) {
	encoded := EncodeUID(42)
	assert.False(t, strings.ContainsAny(encoded, "+/="))

	id, err := DecodeUID(encoded)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	_, err = DecodeUID("!!not-base64!!")
	assert.Error(t, err)
}
