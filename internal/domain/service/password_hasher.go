// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
//
// Both operations are safe for concurrent use without coordination.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. Two calls with
	// the same plaintext need not produce identical digests.
	Hash(password string) (string, error)

	// Check reports whether the plaintext was the material used to produce the
	// digest. A mismatch is the uniform false signal; the error is non-nil only
	// when the digest itself is malformed (domainerrors.ErrMalformedDigest),
	// which indicates data corruption rather than a failed attempt.
	Check(password, digest string) (bool, error)
}
