package signature

import (
	"strings"

	"github.com/keyweave/keyweave/interfaces"
)

// Catalogue and primitive names used in signature registration entries.
const (
	CatalogueSign   = "KeyweaveSign"
	CatalogueVerify = "KeyweaveVerify"

	PrimitiveSigner   = "Signer"
	PrimitiveVerifier = "Verifier"
)

// signerCatalogue selects key managers for private signing key types.
type signerCatalogue struct{}

var _ interfaces.Catalogue[interfaces.Signer] = (*signerCatalogue)(nil)

func (*signerCatalogue) GetKeyManager(typeURL, primitiveName string, minVersion uint32) (interfaces.KeyManager, error) {
	const op = "signature.signerCatalogue"
	if !strings.EqualFold(primitiveName, PrimitiveSigner) {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "catalogue serves %q, not %q", PrimitiveSigner, primitiveName)
	}

	var km interfaces.KeyManager
	switch typeURL {
	case ECDSAP256PrivateKeyTypeURL:
		km = new(ecdsaSignerKeyManager)
	case Ed25519PrivateKeyTypeURL:
		km = new(ed25519SignerKeyManager)
	case Ed448PrivateKeyTypeURL:
		km = new(ed448SignerKeyManager)
	default:
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager for type URL %q", typeURL)
	}
	return checkVersion(op, km, minVersion)
}

// verifierCatalogue selects key managers for public verification key types.
type verifierCatalogue struct{}

var _ interfaces.Catalogue[interfaces.Verifier] = (*verifierCatalogue)(nil)

func (*verifierCatalogue) GetKeyManager(typeURL, primitiveName string, minVersion uint32) (interfaces.KeyManager, error) {
	const op = "signature.verifierCatalogue"
	if !strings.EqualFold(primitiveName, PrimitiveVerifier) {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "catalogue serves %q, not %q", PrimitiveVerifier, primitiveName)
	}

	var km interfaces.KeyManager
	switch typeURL {
	case ECDSAP256PublicKeyTypeURL:
		km = new(ecdsaVerifierKeyManager)
	case Ed25519PublicKeyTypeURL:
		km = new(ed25519VerifierKeyManager)
	case Ed448PublicKeyTypeURL:
		km = new(ed448VerifierKeyManager)
	default:
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager for type URL %q", typeURL)
	}
	return checkVersion(op, km, minVersion)
}

// checkVersion rejects a version floor above the best available
// implementation rather than returning a downgraded manager.
func checkVersion(op string, km interfaces.KeyManager, minVersion uint32) (interfaces.KeyManager, error) {
	if km.Version() < minVersion {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "best available manager for %q is version %d, below the requested floor %d", km.TypeURL(), km.Version(), minVersion)
	}
	return km, nil
}
