package interfaces

// Signer is the single-writer signing primitive. Implementations compute a
// signature over the full data slice; the digest choice belongs to the
// implementation, not the caller.
type Signer interface {
	// Sign computes a signature for the provided data.
	Sign(data []byte) ([]byte, error)
}

// Verifier is the verification counterpart of Signer. A wrapped Verifier
// built from a multi-key keyset accepts signatures produced by any enabled
// key in the set.
type Verifier interface {
	// Verify returns nil if signature is a valid signature for data.
	Verify(signature, data []byte) error
}

// AEAD provides authenticated encryption with associated data. The
// associated data is authenticated but not encrypted, and may be nil.
type AEAD interface {
	// Encrypt encrypts plaintext binding associatedData into the
	// authentication tag.
	Encrypt(plaintext, associatedData []byte) ([]byte, error)

	// Decrypt reverses Encrypt. The same associatedData must be supplied.
	Decrypt(ciphertext, associatedData []byte) ([]byte, error)
}

// MAC computes and verifies message authentication codes.
type MAC interface {
	// ComputeMAC computes an authentication tag for data.
	ComputeMAC(data []byte) ([]byte, error)

	// VerifyMAC returns nil if mac is a valid tag for data.
	VerifyMAC(mac, data []byte) error
}
