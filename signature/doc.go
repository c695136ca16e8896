// Package signature provides the named configuration for digital signature
// primitives: key managers for ECDSA P-256, Ed25519 and Ed448 key types,
// the Signer and Verifier catalogues, and the rotation-aware wrappers.
//
// Typical startup:
//
//	reg := registry.New(logger)
//	if err := signature.Register(reg); err != nil {
//	    return err
//	}
//
// After registration, a keyset handle for any of the supported key types
// can be turned into a single Signer or Verifier via keyset.Primitives and
// registry.Wrap. The wrapped Signer always signs with the keyset's primary
// key; the wrapped Verifier accepts signatures from any enabled key,
// which is what makes key rotation transparent to verifying callers.
package signature
