// Package config provides the declarative registration table driving batch
// key manager registration into a registry.
//
// A Config is an ordered, immutable list of entries, one per key type.
// Named configurations (see the signature, aead and mac packages) expose a
// canonical Config plus a Register function that installs their catalogues
// and wrappers and then drives config.Register. Registration is fail-fast
// and fully idempotent: running the same configuration twice leaves the
// registry in the same observable state.
package config
