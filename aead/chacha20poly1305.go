package aead

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/keyweave/keyweave/interfaces"
)

// ChaCha20Poly1305KeyTypeURL identifies ChaCha20-Poly1305 key material: a
// raw 32-byte key.
const ChaCha20Poly1305KeyTypeURL = "type.keyweave.dev/keyweave.ChaCha20Poly1305Key"

type chaCha20Poly1305KeyManager struct{}

var _ interfaces.KeyManager = (*chaCha20Poly1305KeyManager)(nil)

func (*chaCha20Poly1305KeyManager) Primitive(serializedKey []byte) (any, error) {
	aead, err := chacha20poly1305.New(serializedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid ChaCha20-Poly1305 key material: %w", err)
	}
	return &gcmAEAD{aead: aead}, nil
}

func (*chaCha20Poly1305KeyManager) NewKey() ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("ChaCha20-Poly1305 key generation failed: %w", err)
	}
	return key, nil
}

func (*chaCha20Poly1305KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == ChaCha20Poly1305KeyTypeURL
}

func (*chaCha20Poly1305KeyManager) TypeURL() string { return ChaCha20Poly1305KeyTypeURL }

func (*chaCha20Poly1305KeyManager) Version() uint32 { return 0 }
