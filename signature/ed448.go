package signature

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/keyweave/keyweave/interfaces"
)

// Type URLs for Ed448 key material. Private key material is the 57-byte
// seed, public key material the 57-byte public key. Signatures use an empty
// context string.
const (
	Ed448PrivateKeyTypeURL = "type.keyweave.dev/keyweave.Ed448PrivateKey"
	Ed448PublicKeyTypeURL  = "type.keyweave.dev/keyweave.Ed448PublicKey"
)

type ed448Signer struct {
	key ed448.PrivateKey
}

func (s *ed448Signer) Sign(data []byte) ([]byte, error) {
	return ed448.Sign(s.key, data, ""), nil
}

type ed448Verifier struct {
	key ed448.PublicKey
}

func (v *ed448Verifier) Verify(signature, data []byte) error {
	if !ed448.Verify(v.key, data, signature, "") {
		return interfaces.ErrVerificationFailed
	}
	return nil
}

type ed448SignerKeyManager struct{}

var _ interfaces.PrivateKeyManager = (*ed448SignerKeyManager)(nil)

func (*ed448SignerKeyManager) Primitive(serializedKey []byte) (any, error) {
	if len(serializedKey) != ed448.SeedSize {
		return nil, fmt.Errorf("invalid Ed448 seed length %d, want %d", len(serializedKey), ed448.SeedSize)
	}
	return &ed448Signer{key: ed448.NewKeyFromSeed(serializedKey)}, nil
}

func (*ed448SignerKeyManager) NewKey() ([]byte, error) {
	_, priv, err := ed448.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("Ed448 key generation failed: %w", err)
	}
	return priv.Seed(), nil
}

func (*ed448SignerKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Ed448PrivateKeyTypeURL
}

func (*ed448SignerKeyManager) TypeURL() string { return Ed448PrivateKeyTypeURL }

func (*ed448SignerKeyManager) Version() uint32 { return 0 }

func (*ed448SignerKeyManager) PublicKeyMaterial(serializedPrivKey []byte) (string, []byte, error) {
	if len(serializedPrivKey) != ed448.SeedSize {
		return "", nil, fmt.Errorf("invalid Ed448 seed length %d, want %d", len(serializedPrivKey), ed448.SeedSize)
	}
	priv := ed448.NewKeyFromSeed(serializedPrivKey)
	material := make([]byte, ed448.PublicKeySize)
	copy(material, priv.Public().(ed448.PublicKey))
	return Ed448PublicKeyTypeURL, material, nil
}

type ed448VerifierKeyManager struct{}

var _ interfaces.KeyManager = (*ed448VerifierKeyManager)(nil)

func (*ed448VerifierKeyManager) Primitive(serializedKey []byte) (any, error) {
	if len(serializedKey) != ed448.PublicKeySize {
		return nil, fmt.Errorf("invalid Ed448 public key length %d, want %d", len(serializedKey), ed448.PublicKeySize)
	}
	return &ed448Verifier{key: ed448.PublicKey(serializedKey)}, nil
}

func (*ed448VerifierKeyManager) NewKey() ([]byte, error) {
	return nil, errors.New("public key types do not support key generation")
}

func (*ed448VerifierKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Ed448PublicKeyTypeURL
}

func (*ed448VerifierKeyManager) TypeURL() string { return Ed448PublicKeyTypeURL }

func (*ed448VerifierKeyManager) Version() uint32 { return 0 }
