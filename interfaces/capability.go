package interfaces

import "github.com/keyweave/keyweave/primitiveset"

// KeyManager is the capability object supplied by the algorithm layer for a
// single key type URL. It validates serialized key material and constructs
// primitive instances from it. Implementations must be stateless or
// read-only after construction so a single manager can serve concurrent
// callers.
type KeyManager interface {
	// Primitive constructs a primitive instance from serialized key
	// material. The returned value implements the primitive interface the
	// manager is registered for.
	Primitive(serializedKey []byte) (any, error)

	// NewKey generates fresh key material for this key type. Managers for
	// public key types return an error.
	NewKey() ([]byte, error)

	// DoesSupport reports whether the manager handles the given type URL.
	DoesSupport(typeURL string) bool

	// TypeURL returns the type URL the manager handles.
	TypeURL() string

	// Version returns the manager implementation version. Re-registration
	// with a lower version than previously recorded is rejected by the
	// registry.
	Version() uint32
}

// PrivateKeyManager extends KeyManager for asymmetric private key types,
// supporting public keyset extraction.
type PrivateKeyManager interface {
	KeyManager

	// PublicKeyMaterial derives the public key material corresponding to
	// the given private key material, returning the public key's type URL
	// alongside it.
	PublicKeyMaterial(serializedPrivKey []byte) (typeURL string, material []byte, err error)
}

// Catalogue selects a KeyManager implementation for its primitive kind P.
// A catalogue owns knowledge of which concrete implementations exist for
// its type URLs and must reject a minVersion floor that exceeds the best
// available implementation, never returning a downgraded manager.
//
// The type parameter is a compile-time tag only: it binds the catalogue,
// and every manager it hands out, to one primitive kind in the registry.
type Catalogue[P any] interface {
	// GetKeyManager returns a key manager for the requested type URL and
	// primitive name with Version() >= minVersion.
	GetKeyManager(typeURL, primitiveName string, minVersion uint32) (KeyManager, error)
}

// PrimitiveWrapper combines a primitive set into a single primitive of kind
// P implementing rotation-aware dispatch. Wrap must not retain mutable
// state: the returned primitive is shared across concurrent callers
// indefinitely.
type PrimitiveWrapper[P any] interface {
	// Wrap builds the combined primitive from the set.
	Wrap(set *primitiveset.Set[P]) (P, error)
}
