// Package keyset provides an in-memory keyset abstraction: an ordered
// collection of key entries with one designated primary, plus a manager for
// generating and rotating keys through the registry.
//
// The package owns no persistence and no key serialization format beyond
// carrying each key's opaque material. A Handle is an immutable snapshot;
// Primitives turns it into a primitive set ready for registry.Wrap, and
// Public derives the verification half of an asymmetric keyset.
package keyset
