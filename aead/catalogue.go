package aead

import (
	"strings"

	"github.com/keyweave/keyweave/interfaces"
)

// Catalogue and primitive names used in AEAD registration entries.
const (
	CatalogueAEAD = "KeyweaveAEAD"
	PrimitiveAEAD = "AEAD"
)

type aeadCatalogue struct{}

var _ interfaces.Catalogue[interfaces.AEAD] = (*aeadCatalogue)(nil)

func (*aeadCatalogue) GetKeyManager(typeURL, primitiveName string, minVersion uint32) (interfaces.KeyManager, error) {
	const op = "aead.aeadCatalogue"
	if !strings.EqualFold(primitiveName, PrimitiveAEAD) {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "catalogue serves %q, not %q", PrimitiveAEAD, primitiveName)
	}

	var km interfaces.KeyManager
	switch typeURL {
	case AESGCMKeyTypeURL:
		km = new(aesGCMKeyManager)
	case ChaCha20Poly1305KeyTypeURL:
		km = new(chaCha20Poly1305KeyManager)
	default:
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager for type URL %q", typeURL)
	}
	if km.Version() < minVersion {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "best available manager for %q is version %d, below the requested floor %d", typeURL, km.Version(), minVersion)
	}
	return km, nil
}
