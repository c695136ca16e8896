package keyset

import (
	"errors"
	"fmt"

	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/primitiveset"
	"github.com/keyweave/keyweave/registry"
)

// Key is one entry of a keyset: opaque key material for a type URL plus the
// metadata the dispatch layer needs.
type Key struct {
	TypeURL  string
	Material []byte
	ID       uint32
	Status   primitiveset.KeyStatus
	Prefix   primitiveset.OutputPrefix
}

// Handle is an immutable ordered keyset snapshot. PrimaryID zero means no
// primary, which is valid for verification-only keysets.
type Handle struct {
	keys      []Key
	primaryID uint32
}

// NewHandle creates a handle from the given keys. Key IDs must be nonzero
// and unique; a nonzero primaryID must reference an enabled key.
func NewHandle(keys []Key, primaryID uint32) (*Handle, error) {
	if len(keys) == 0 {
		return nil, errors.New("keyset must contain at least one key")
	}

	seen := make(map[uint32]bool, len(keys))
	var primaryFound bool
	for _, k := range keys {
		if k.ID == 0 {
			return nil, errors.New("key ID must be nonzero")
		}
		if seen[k.ID] {
			return nil, fmt.Errorf("duplicate key ID %d", k.ID)
		}
		seen[k.ID] = true
		if k.ID == primaryID {
			if k.Status != primitiveset.StatusEnabled {
				return nil, fmt.Errorf("primary key %d is not enabled", primaryID)
			}
			primaryFound = true
		}
	}
	if primaryID != 0 && !primaryFound {
		return nil, fmt.Errorf("primary key %d is not in the keyset", primaryID)
	}

	copied := make([]Key, len(keys))
	copy(copied, keys)
	return &Handle{keys: copied, primaryID: primaryID}, nil
}

// Keys returns a copy of the key entries in keyset order.
func (h *Handle) Keys() []Key {
	out := make([]Key, len(h.keys))
	copy(out, h.keys)
	return out
}

// PrimaryID returns the primary key's ID, or zero if none is designated.
func (h *Handle) PrimaryID() uint32 { return h.primaryID }

// Len returns the number of keys in the keyset.
func (h *Handle) Len() int { return len(h.keys) }

// Primitives builds a primitive set of kind P from the handle. Enabled and
// disabled keys get primitive instances; destroyed keys are carried as
// metadata-only entries. The primary key, if any, becomes the set's primary
// entry.
func Primitives[P any](r *registry.Registry, h *Handle) (*primitiveset.Set[P], error) {
	set := primitiveset.New[P]()
	for _, k := range h.keys {
		var primitive P
		if k.Status != primitiveset.StatusDestroyed {
			p, err := registry.Primitive[P](r, k.TypeURL, k.Material)
			if err != nil {
				return nil, fmt.Errorf("keyset.Primitives: key %d: %w", k.ID, err)
			}
			primitive = p
		}
		entry, err := set.Add(primitive, k.ID, k.Status, k.Prefix)
		if err != nil {
			return nil, fmt.Errorf("keyset.Primitives: key %d: %w", k.ID, err)
		}
		if k.ID == h.primaryID {
			if err := set.SetPrimary(entry); err != nil {
				return nil, fmt.Errorf("keyset.Primitives: key %d: %w", k.ID, err)
			}
		}
	}
	return set, nil
}

// Public derives the public keyset of an asymmetric keyset. Every
// non-destroyed key's manager must implement PrivateKeyManager. Key IDs,
// statuses, prefixes and the primary designation carry over.
func (h *Handle) Public(r *registry.Registry) (*Handle, error) {
	const op = "keyset.Public"

	keys := make([]Key, 0, len(h.keys))
	for _, k := range h.keys {
		if k.Status == primitiveset.StatusDestroyed {
			keys = append(keys, Key{TypeURL: k.TypeURL, ID: k.ID, Status: k.Status, Prefix: k.Prefix})
			continue
		}

		km, err := r.KeyManager(k.TypeURL)
		if err != nil {
			return nil, fmt.Errorf("%s: key %d: %w", op, k.ID, err)
		}
		pkm, ok := km.(interfaces.PrivateKeyManager)
		if !ok {
			return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "key %d: type URL %q is not an asymmetric private key type", k.ID, k.TypeURL)
		}
		pubTypeURL, material, err := pkm.PublicKeyMaterial(k.Material)
		if err != nil {
			return nil, fmt.Errorf("%s: key %d: %w", op, k.ID, err)
		}
		keys = append(keys, Key{
			TypeURL:  pubTypeURL,
			Material: material,
			ID:       k.ID,
			Status:   k.Status,
			Prefix:   k.Prefix,
		})
	}
	return NewHandle(keys, h.primaryID)
}
