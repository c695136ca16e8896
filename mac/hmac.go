package mac

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/keyweave/keyweave/interfaces"
)

// HMACSHA256KeyTypeURL identifies HMAC-SHA256 key material: a raw 32-byte
// key producing full-length 32-byte tags.
const HMACSHA256KeyTypeURL = "type.keyweave.dev/keyweave.HmacSha256Key"

const hmacKeySize = 32

type hmacSHA256 struct {
	key []byte
}

func (h *hmacSHA256) ComputeMAC(data []byte) ([]byte, error) {
	m := hmac.New(sha256.New, h.key)
	m.Write(data)
	return m.Sum(nil), nil
}

func (h *hmacSHA256) VerifyMAC(mac, data []byte) error {
	expected, err := h.ComputeMAC(data)
	if err != nil {
		return err
	}
	if !hmac.Equal(mac, expected) {
		return interfaces.ErrVerificationFailed
	}
	return nil
}

type hmacSHA256KeyManager struct{}

var _ interfaces.KeyManager = (*hmacSHA256KeyManager)(nil)

func (*hmacSHA256KeyManager) Primitive(serializedKey []byte) (any, error) {
	if len(serializedKey) != hmacKeySize {
		return nil, fmt.Errorf("invalid HMAC-SHA256 key length %d, want %d", len(serializedKey), hmacKeySize)
	}
	key := make([]byte, hmacKeySize)
	copy(key, serializedKey)
	return &hmacSHA256{key: key}, nil
}

func (*hmacSHA256KeyManager) NewKey() ([]byte, error) {
	key := make([]byte, hmacKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("HMAC key generation failed: %w", err)
	}
	return key, nil
}

func (*hmacSHA256KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == HMACSHA256KeyTypeURL
}

func (*hmacSHA256KeyManager) TypeURL() string { return HMACSHA256KeyTypeURL }

func (*hmacSHA256KeyManager) Version() uint32 { return 0 }
