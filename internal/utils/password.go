package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an account password for storage at registration time.
// The cost comes from BCRYPT_COST; values outside bcrypt's supported range
// fall back to the library default so a bad setting cannot weaken hashes or
// make registration start failing.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain is the password behind the stored
// hash.  The token exchange folds any failure, including a malformed hash,
// into the same invalid-credentials response.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
