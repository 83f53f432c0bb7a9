package auth

import (
	"regexp"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	hasUpper = regexp.MustCompile(`[A-Z]`)
	hasLower = regexp.MustCompile(`[a-z]`)
	hasDigit = regexp.MustCompile(`\d`)
)

// HashPassword hashes with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword applies the strength rules and returns human-readable
// reasons for every failure rather than stopping at the first.
func ValidatePassword(password string) []string {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters long.")
	}
	if password != "" && allNumeric(password) {
		errs = append(errs, "Password cannot be only numbers.")
	}
	if !hasUpper.MatchString(password) {
		errs = append(errs, "Password must contain at least one uppercase letter.")
	}
	if !hasLower.MatchString(password) {
		errs = append(errs, "Password must contain at least one lowercase letter.")
	}
	if !hasDigit.MatchString(password) {
		errs = append(errs, "Password must contain at least one number.")
	}
	return errs
}

func allNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
