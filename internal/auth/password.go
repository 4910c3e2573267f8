package auth

import "golang.org/x/crypto/bcrypt"

// FederatedPasswordSentinel is stored in place of a bcrypt digest for users
// provisioned through Google login. It is not a valid bcrypt hash, so
// CheckPasswordHash can never succeed against it and the password flow stays
// closed for those accounts.
const FederatedPasswordSentinel = "google-login"

// HashPassword hashes a plaintext password with bcrypt. The salt is embedded
// in the digest. Empty input is allowed; presence validation happens in the
// service layer.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches the stored digest.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
