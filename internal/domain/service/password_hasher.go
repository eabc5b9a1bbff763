// Package service declares the domain-level contracts for infrastructure
// capabilities (hashing, tokens, outbound messaging, event publishing).
package service

// PasswordHasher abstracts password hashing so the domain never sees the
// concrete algorithm.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool
}
