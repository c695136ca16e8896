package signature

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/keyweave/keyweave/interfaces"
)

// Type URLs for Ed25519 key material. Private key material is the 32-byte
// seed, public key material the 32-byte public key.
const (
	Ed25519PrivateKeyTypeURL = "type.keyweave.dev/keyweave.Ed25519PrivateKey"
	Ed25519PublicKeyTypeURL  = "type.keyweave.dev/keyweave.Ed25519PublicKey"
)

type ed25519Signer struct {
	key ed25519.PrivateKey
}

func (s *ed25519Signer) Sign(data []byte) ([]byte, error) {
	return ed25519.Sign(s.key, data), nil
}

type ed25519Verifier struct {
	key ed25519.PublicKey
}

func (v *ed25519Verifier) Verify(signature, data []byte) error {
	if !ed25519.Verify(v.key, data, signature) {
		return interfaces.ErrVerificationFailed
	}
	return nil
}

type ed25519SignerKeyManager struct{}

var _ interfaces.PrivateKeyManager = (*ed25519SignerKeyManager)(nil)

func (*ed25519SignerKeyManager) Primitive(serializedKey []byte) (any, error) {
	if len(serializedKey) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid Ed25519 seed length %d, want %d", len(serializedKey), ed25519.SeedSize)
	}
	return &ed25519Signer{key: ed25519.NewKeyFromSeed(serializedKey)}, nil
}

func (*ed25519SignerKeyManager) NewKey() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("Ed25519 key generation failed: %w", err)
	}
	return priv.Seed(), nil
}

func (*ed25519SignerKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Ed25519PrivateKeyTypeURL
}

func (*ed25519SignerKeyManager) TypeURL() string { return Ed25519PrivateKeyTypeURL }

func (*ed25519SignerKeyManager) Version() uint32 { return 0 }

func (*ed25519SignerKeyManager) PublicKeyMaterial(serializedPrivKey []byte) (string, []byte, error) {
	if len(serializedPrivKey) != ed25519.SeedSize {
		return "", nil, fmt.Errorf("invalid Ed25519 seed length %d, want %d", len(serializedPrivKey), ed25519.SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(serializedPrivKey)
	material := make([]byte, ed25519.PublicKeySize)
	copy(material, priv.Public().(ed25519.PublicKey))
	return Ed25519PublicKeyTypeURL, material, nil
}

type ed25519VerifierKeyManager struct{}

var _ interfaces.KeyManager = (*ed25519VerifierKeyManager)(nil)

func (*ed25519VerifierKeyManager) Primitive(serializedKey []byte) (any, error) {
	if len(serializedKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid Ed25519 public key length %d, want %d", len(serializedKey), ed25519.PublicKeySize)
	}
	return &ed25519Verifier{key: ed25519.PublicKey(serializedKey)}, nil
}

func (*ed25519VerifierKeyManager) NewKey() ([]byte, error) {
	return nil, errors.New("public key types do not support key generation")
}

func (*ed25519VerifierKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Ed25519PublicKeyTypeURL
}

func (*ed25519VerifierKeyManager) TypeURL() string { return Ed25519PublicKeyTypeURL }

func (*ed25519VerifierKeyManager) Version() uint32 { return 0 }
