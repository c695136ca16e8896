// Package mac provides the named configuration for message authentication:
// an HMAC-SHA256 key manager, the MAC catalogue, and the rotation-aware
// wrapper. Tag computation uses the keyset's primary key; tag verification
// tries every enabled key.
package mac
