// Package registry provides the process-wide lookup table binding key type
// URLs to key managers, catalogue names to catalogues, and primitive kinds
// to primitive wrappers.
//
// Unlike a package-global table, a Registry is an explicit context object:
// construct one with New at startup and pass it to every call site that
// registers or looks up. This keeps test fixtures independent and makes the
// test-only Reset operation safe to reason about.
//
// Registration is rare (typically once, driven by a named configuration's
// Register function) and takes the write lock. Lookups are frequent and
// take only the read lock, so concurrent request-handling goroutines do not
// serialize on registrations. A primitive obtained from Wrap holds no
// reference back to the registry and survives Reset and re-registration.
//
// # Conflict Semantics
//
// Registration of a named resource succeeds if the name is free, succeeds
// as a no-op if the incoming value is equivalent to the recorded one, and
// fails with a KindAlreadyExists error otherwise. Equivalence is
// deliberately conservative: catalogues and wrappers are equivalent only
// when they are the exact same registered value; key managers are
// equivalent when they are the same concrete implementation for the same
// primitive kind with a version at least as high as the recorded one.
//
// # Usage
//
//	reg := registry.New(logger)
//	if err := signature.Register(reg); err != nil {
//	    // handle startup failure
//	}
//	set, err := keyset.Primitives[interfaces.Signer](reg, handle)
//	signer, err := registry.Wrap(reg, set)
package registry
