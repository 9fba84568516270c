package hash

// Hasher turns a plaintext secret into a salted one-way encoding and checks
// plaintexts against it.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) (bool, error)
}
