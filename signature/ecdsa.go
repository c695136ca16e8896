package signature

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"errors"
	"fmt"

	"github.com/keyweave/keyweave/interfaces"
)

// Type URLs for ECDSA P-256 key material. Private key material is SEC 1 DER
// (RFC 5915), public key material is PKIX DER.
const (
	ECDSAP256PrivateKeyTypeURL = "type.keyweave.dev/keyweave.EcdsaP256PrivateKey"
	ECDSAP256PublicKeyTypeURL  = "type.keyweave.dev/keyweave.EcdsaP256PublicKey"
)

// ecdsaSigner signs SHA-256 digests with an ECDSA P-256 key, producing
// ASN.1 DER signatures.
type ecdsaSigner struct {
	key *ecdsa.PrivateKey
}

func (s *ecdsaSigner) Sign(data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	return ecdsa.SignASN1(rand.Reader, s.key, digest[:])
}

type ecdsaVerifier struct {
	key *ecdsa.PublicKey
}

func (v *ecdsaVerifier) Verify(signature, data []byte) error {
	digest := sha256.Sum256(data)
	if !ecdsa.VerifyASN1(v.key, digest[:], signature) {
		return interfaces.ErrVerificationFailed
	}
	return nil
}

type ecdsaSignerKeyManager struct{}

var _ interfaces.PrivateKeyManager = (*ecdsaSignerKeyManager)(nil)

func (*ecdsaSignerKeyManager) Primitive(serializedKey []byte) (any, error) {
	key, err := parseECDSAPrivateKey(serializedKey)
	if err != nil {
		return nil, err
	}
	return &ecdsaSigner{key: key}, nil
}

func (*ecdsaSignerKeyManager) NewKey() ([]byte, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("ECDSA key generation failed: %w", err)
	}
	return x509.MarshalECPrivateKey(key)
}

func (*ecdsaSignerKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == ECDSAP256PrivateKeyTypeURL
}

func (*ecdsaSignerKeyManager) TypeURL() string { return ECDSAP256PrivateKeyTypeURL }

func (*ecdsaSignerKeyManager) Version() uint32 { return 0 }

func (*ecdsaSignerKeyManager) PublicKeyMaterial(serializedPrivKey []byte) (string, []byte, error) {
	key, err := parseECDSAPrivateKey(serializedPrivKey)
	if err != nil {
		return "", nil, err
	}
	material, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return ECDSAP256PublicKeyTypeURL, material, nil
}

type ecdsaVerifierKeyManager struct{}

var _ interfaces.KeyManager = (*ecdsaVerifierKeyManager)(nil)

func (*ecdsaVerifierKeyManager) Primitive(serializedKey []byte) (any, error) {
	pub, err := x509.ParsePKIXPublicKey(serializedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid ECDSA public key material: %w", err)
	}
	key, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key material holds %T, not an ECDSA public key", pub)
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("unsupported curve %s, want P-256", key.Curve.Params().Name)
	}
	return &ecdsaVerifier{key: key}, nil
}

func (*ecdsaVerifierKeyManager) NewKey() ([]byte, error) {
	return nil, errors.New("public key types do not support key generation")
}

func (*ecdsaVerifierKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == ECDSAP256PublicKeyTypeURL
}

func (*ecdsaVerifierKeyManager) TypeURL() string { return ECDSAP256PublicKeyTypeURL }

func (*ecdsaVerifierKeyManager) Version() uint32 { return 0 }

func parseECDSAPrivateKey(serializedKey []byte) (*ecdsa.PrivateKey, error) {
	key, err := x509.ParseECPrivateKey(serializedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid ECDSA private key material: %w", err)
	}
	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("unsupported curve %s, want P-256", key.Curve.Params().Name)
	}
	return key, nil
}
