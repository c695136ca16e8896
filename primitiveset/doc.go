// Package primitiveset provides the ordered collection of primitive
// instances built from a multi-key keyset.
//
// A Set holds one entry per key, in keyset order, with at most one entry
// designated primary. Single-writer operations (sign, encrypt, compute MAC)
// delegate to the primary; multi-reader operations (verify, decrypt) try
// each enabled entry in order. The set is built once by the keyset layer
// and treated as read-only by primitive wrappers.
package primitiveset
