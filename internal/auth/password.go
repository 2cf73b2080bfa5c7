package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost makes a single verification take on the order of 100ms on
// commodity hardware, which is the point: brute-forcing stolen digests
// has to pay that cost per guess.
const bcryptCost = 12

// HashPassword derives a salted one-way digest of the plaintext.
// bcrypt generates a fresh random salt per call, so hashing the same
// password twice yields different digests.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// The comparison inside bcrypt is constant-time.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
