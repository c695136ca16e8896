package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/keyweave/keyweave/interfaces"
)

// AESGCMKeyTypeURL identifies AES-256-GCM key material: a raw 32-byte key.
const AESGCMKeyTypeURL = "type.keyweave.dev/keyweave.Aes256GcmKey"

const aesGCMKeySize = 32

// gcmAEAD implements the AEAD primitive over any cipher.AEAD with a random
// nonce prepended to the ciphertext.
type gcmAEAD struct {
	aead cipher.AEAD
}

func (g *gcmAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := make([]byte, g.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce generation failed: %w", err)
	}
	return g.aead.Seal(nonce, nonce, plaintext, associatedData), nil
}

func (g *gcmAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < g.aead.NonceSize() {
		return nil, interfaces.ErrDecryptionFailed
	}
	nonce, ct := ciphertext[:g.aead.NonceSize()], ciphertext[g.aead.NonceSize():]
	plaintext, err := g.aead.Open(nil, nonce, ct, associatedData)
	if err != nil {
		return nil, interfaces.ErrDecryptionFailed
	}
	return plaintext, nil
}

type aesGCMKeyManager struct{}

var _ interfaces.KeyManager = (*aesGCMKeyManager)(nil)

func (*aesGCMKeyManager) Primitive(serializedKey []byte) (any, error) {
	if len(serializedKey) != aesGCMKeySize {
		return nil, fmt.Errorf("invalid AES-256-GCM key length %d, want %d", len(serializedKey), aesGCMKeySize)
	}
	block, err := aes.NewCipher(serializedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid AES key material: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("GCM construction failed: %w", err)
	}
	return &gcmAEAD{aead: aead}, nil
}

func (*aesGCMKeyManager) NewKey() ([]byte, error) {
	key := make([]byte, aesGCMKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("AES key generation failed: %w", err)
	}
	return key, nil
}

func (*aesGCMKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == AESGCMKeyTypeURL
}

func (*aesGCMKeyManager) TypeURL() string { return AESGCMKeyTypeURL }

func (*aesGCMKeyManager) Version() uint32 { return 0 }
