// Package aead provides the named configuration for authenticated
// encryption primitives: key managers for AES-256-GCM and
// ChaCha20-Poly1305 key types, the AEAD catalogue, and the rotation-aware
// wrapper.
//
// A wrapped AEAD encrypts with the keyset's primary key and decrypts by
// trying every enabled key in keyset order, so ciphertexts produced before
// a rotation remain decryptable.
package aead
