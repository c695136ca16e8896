package config

import (
	"fmt"

	"github.com/keyweave/keyweave/registry"
)

// Entry describes the registration of one key type: which catalogue
// provides the key manager, the primitive it serves, the key type URL, and
// the registration flags. Entries are immutable once constructed.
type Entry struct {
	catalogueName     string
	primitiveName     string
	typeURL           string
	newKeyAllowed     bool
	keyManagerVersion uint32
}

// NewEntry creates a registration entry.
func NewEntry(catalogueName, primitiveName, typeURL string, newKeyAllowed bool, keyManagerVersion uint32) Entry {
	return Entry{
		catalogueName:     catalogueName,
		primitiveName:     primitiveName,
		typeURL:           typeURL,
		newKeyAllowed:     newKeyAllowed,
		keyManagerVersion: keyManagerVersion,
	}
}

// CatalogueName returns the name of the catalogue providing the manager.
func (e Entry) CatalogueName() string { return e.catalogueName }

// PrimitiveName returns the name of the primitive the manager serves.
func (e Entry) PrimitiveName() string { return e.primitiveName }

// TypeURL returns the key type URL being registered.
func (e Entry) TypeURL() string { return e.typeURL }

// NewKeyAllowed reports whether key generation is permitted for this type.
func (e Entry) NewKeyAllowed() bool { return e.newKeyAllowed }

// KeyManagerVersion returns the minimum acceptable manager version.
func (e Entry) KeyManagerVersion() uint32 { return e.keyManagerVersion }

// Config is an ordered sequence of registration entries. Insertion order is
// meaningful: related entries, such as the sign and verify halves of one
// algorithm, are adjacent.
type Config struct {
	entries []Entry
}

// New creates a config from the given entries, in order.
func New(entries ...Entry) Config {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return Config{entries: copied}
}

// Entries returns a copy of the entry list.
func (c Config) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Entry returns the i-th entry.
func (c Config) Entry(i int) Entry { return c.entries[i] }

// Len returns the number of entries.
func (c Config) Len() int { return len(c.entries) }

// Register drives the config's entries into the registry, in order. Each
// entry resolves its catalogue by name, obtains a key manager honoring the
// entry's version floor, and registers it with the entry's flags.
//
// The first failing entry stops further progress and surfaces its error;
// entries already registered by prior steps stay registered (no rollback).
// Running Register twice with the same config succeeds both times.
func Register(r *registry.Registry, c Config) error {
	for i, e := range c.entries {
		err := r.RegisterFromCatalogue(e.catalogueName, e.primitiveName, e.typeURL, e.keyManagerVersion, e.newKeyAllowed)
		if err != nil {
			return fmt.Errorf("config.Register: entry %d (%s): %w", i, e.typeURL, err)
		}
	}
	return nil
}
