package ports

// PasswordHasher is the pluggable one-way credential transform. The concrete
// algorithm is an implementation detail; the contract is that Verify accepts
// exactly the plaintexts that produced the digest.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenGenerator produces opaque session tokens from a random space large
// enough that guessing or enumeration is infeasible.
type TokenGenerator interface {
	Generate() (string, error)
}
