// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// random per call, so equal passwords produce distinct hashes.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash in constant time.
	// Returns false, never an error, for malformed or corrupt hashes.
	Check(password, hash string) bool
}
