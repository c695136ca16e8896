package primitiveset

import (
	"errors"
	"fmt"
)

// KeyStatus describes whether a key participates in primitive operations.
type KeyStatus int

const (
	StatusUnknown KeyStatus = iota

	// StatusEnabled keys participate in all operations.
	StatusEnabled

	// StatusDisabled keys are retained in the set but skipped by every
	// operation. A disabled key can be re-enabled by the keyset layer.
	StatusDisabled

	// StatusDestroyed keys have had their material deleted. Only the key
	// identifier and metadata remain.
	StatusDestroyed
)

func (s KeyStatus) String() string {
	switch s {
	case StatusEnabled:
		return "enabled"
	case StatusDisabled:
		return "disabled"
	case StatusDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// OutputPrefix identifies the output format family a key's outputs carry.
// The registry core stores the kind without interpreting it; output framing
// belongs to the algorithm layer.
type OutputPrefix int

const (
	PrefixUnknown OutputPrefix = iota

	// PrefixVersioned outputs carry a versioned key-identifier prefix.
	PrefixVersioned

	// PrefixLegacy outputs carry the legacy prefix format.
	PrefixLegacy

	// PrefixRaw outputs carry no prefix.
	PrefixRaw

	// PrefixCompat outputs carry the compatibility prefix format.
	PrefixCompat
)

func (p OutputPrefix) String() string {
	switch p {
	case PrefixVersioned:
		return "versioned"
	case PrefixLegacy:
		return "legacy"
	case PrefixRaw:
		return "raw"
	case PrefixCompat:
		return "compat"
	default:
		return "unknown"
	}
}

// Entry is a single primitive instance with its key metadata.
type Entry[P any] struct {
	Primitive P
	KeyID     uint32
	Status    KeyStatus
	Prefix    OutputPrefix
}

// Set is an ordered collection of entries built from a keyset, with at most
// one entry designated primary. It is mutated only while being built;
// wrappers hold a read-only view.
type Set[P any] struct {
	entries []*Entry[P]
	primary *Entry[P]
}

// New creates an empty set.
func New[P any]() *Set[P] {
	return &Set[P]{}
}

// Add appends an entry to the set and returns it. Destroyed keys may be
// added without a usable primitive; their entries are skipped by wrappers.
func (s *Set[P]) Add(primitive P, keyID uint32, status KeyStatus, prefix OutputPrefix) (*Entry[P], error) {
	switch status {
	case StatusEnabled, StatusDisabled, StatusDestroyed:
	default:
		return nil, fmt.Errorf("invalid key status: %v", status)
	}
	switch prefix {
	case PrefixVersioned, PrefixLegacy, PrefixRaw, PrefixCompat:
	default:
		return nil, fmt.Errorf("invalid output prefix: %v", prefix)
	}

	entry := &Entry[P]{
		Primitive: primitive,
		KeyID:     keyID,
		Status:    status,
		Prefix:    prefix,
	}
	s.entries = append(s.entries, entry)
	return entry, nil
}

// SetPrimary designates the primary entry. The entry must belong to this
// set and be enabled.
func (s *Set[P]) SetPrimary(entry *Entry[P]) error {
	if entry == nil {
		return errors.New("primary entry must not be nil")
	}
	if entry.Status != StatusEnabled {
		return errors.New("primary entry must be enabled")
	}
	for _, e := range s.entries {
		if e == entry {
			s.primary = entry
			return nil
		}
	}
	return errors.New("entry does not belong to this set")
}

// Primary returns the primary entry, or nil if none is designated. Sets
// used only for verification carry no primary.
func (s *Set[P]) Primary() *Entry[P] {
	return s.primary
}

// Entries returns the entries in keyset order. The returned slice is a
// copy; the entries themselves are shared.
func (s *Set[P]) Entries() []*Entry[P] {
	out := make([]*Entry[P], len(s.entries))
	copy(out, s.entries)
	return out
}

// EnabledEntries returns the enabled entries in keyset order.
func (s *Set[P]) EnabledEntries() []*Entry[P] {
	var out []*Entry[P]
	for _, e := range s.entries {
		if e.Status == StatusEnabled {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries in the set.
func (s *Set[P]) Len() int {
	return len(s.entries)
}
