package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopora/ecommerce-api/models"
)

// Activation and password-reset links carry a base64 user id plus a signed,
// time-bound token. The MAC covers account state (is_active for activation,
// the password hash for resets), so a token stops verifying as soon as it has
// been used: activating flips is_active, resetting replaces the hash.

// EncodeUID encodes a user id the way links embed it.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(s string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// ActivationToken returns a token proving control of the registration email.
func ActivationToken(secret string, user *models.User) string {
	return makeToken(secret, activationState(user), time.Now())
}

// CheckActivationToken reports whether the token is genuine, unexpired and
// still matches the user's current state.
func CheckActivationToken(secret string, user *models.User, token string, maxAge time.Duration) bool {
	return checkToken(secret, activationState(user), token, maxAge)
}

// ResetToken returns a password-reset token bound to the current password
// hash.
func ResetToken(secret string, user *models.User) string {
	return makeToken(secret, resetState(user), time.Now())
}

// CheckResetToken validates a password-reset token.
func CheckResetToken(secret string, user *models.User, token string, maxAge time.Duration) bool {
	return checkToken(secret, resetState(user), token, maxAge)
}

func activationState(u *models.User) string {
	return fmt.Sprintf("activate:%d:%t:%s", u.ID, u.IsActive, u.PasswordHash)
}

func resetState(u *models.User) string {
	return fmt.Sprintf("reset:%d:%s", u.ID, u.PasswordHash)
}

func makeToken(secret, state string, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 36)
	return ts + "-" + signState(secret, state, ts)
}

func checkToken(secret, state, token string, maxAge time.Duration) bool {
	ts, sig, found := strings.Cut(token, "-")
	if !found {
		return false
	}
	issued, err := strconv.ParseInt(ts, 36, 64)
	if err != nil {
		return false
	}
	if time.Since(time.Unix(issued, 0)) > maxAge {
		return false
	}
	expected := signState(secret, state, ts)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func signState(secret, state, ts string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(state + "|" + ts))
	return hex.EncodeToString(mac.Sum(nil))[:40]
}
