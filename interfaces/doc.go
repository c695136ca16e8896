// Package interfaces defines core interfaces and types for the keyweave
// registry system, separating interface definitions from implementations.
//
// The package provides the contracts between the three layers of the system:
//
// # Primitive Interfaces
//
// Signer, Verifier, AEAD and MAC are the per-kind operation contracts. A
// wrapped primitive obtained from the registry implements exactly one of
// these and is safe for concurrent use without external synchronization.
//
// # Capability Interfaces
//
// KeyManager: Produces primitive instances from serialized key material for
// a single key type URL. Concrete implementations belong to the algorithm
// layer (signature, aead, mac packages); the registry only consumes the
// capability.
//
// PrivateKeyManager: Extends KeyManager for asymmetric private key types,
// allowing extraction of the corresponding public key material.
//
// Catalogue: Selects an available KeyManager implementation for a type URL,
// subject to a minimum version floor. Catalogues let alternate
// implementations be swapped in without changing registration call sites.
//
// PrimitiveWrapper: Combines a primitive set built from a multi-key keyset
// into a single primitive with rotation-aware dispatch.
//
// # Error Taxonomy
//
// Registry and config operations classify failures with a Kind
// (KindNotFound, KindAlreadyExists, KindInvalidArgument, KindInternal) so
// callers can branch on the failure class rather than on message text.
// Runtime verification and decryption failures are deliberately opaque:
// ErrVerificationFailed and ErrDecryptionFailed carry no detail about which
// candidate key failed.
package interfaces
