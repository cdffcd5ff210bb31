package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes plain at the configured cost.  Costs below the
// bcrypt minimum (e.g. an unset config value) fall back to the library
// default rather than silently weakening hashes.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
