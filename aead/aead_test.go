package aead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyweave/keyweave/aead"
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/keyset"
	"github.com/keyweave/keyweave/primitiveset"
	"github.com/keyweave/keyweave/registry"
)

var aeadKeyTypes = []string{
	aead.AESGCMKeyTypeURL,
	aead.ChaCha20Poly1305KeyTypeURL,
}

func newAEAD(t *testing.T, r *registry.Registry, typeURL string) (interfaces.AEAD, *keyset.Manager) {
	t.Helper()
	m := keyset.NewManager(r)
	_, err := m.Rotate(typeURL)
	require.NoError(t, err)
	return wrapManager(t, r, m), m
}

func wrapManager(t *testing.T, r *registry.Registry, m *keyset.Manager) interfaces.AEAD {
	t.Helper()
	h, err := m.Handle()
	require.NoError(t, err)
	set, err := keyset.Primitives[interfaces.AEAD](r, h)
	require.NoError(t, err)
	a, err := registry.Wrap(r, set)
	require.NoError(t, err)
	return a
}

func TestLatestTableShape(t *testing.T) {
	c := aead.Latest()
	require.Equal(t, len(aeadKeyTypes), c.Len())
	for i, typeURL := range aeadKeyTypes {
		e := c.Entry(i)
		assert.Equal(t, aead.CatalogueAEAD, e.CatalogueName())
		assert.Equal(t, aead.PrimitiveAEAD, e.PrimitiveName())
		assert.Equal(t, typeURL, e.TypeURL())
		assert.True(t, e.NewKeyAllowed())
		assert.Equal(t, uint32(0), e.KeyManagerVersion())
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, aead.Register(r))
	stats := r.Stats()
	require.NoError(t, aead.Register(r))
	assert.Equal(t, stats.Registrations, r.Stats().Registrations)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, typeURL := range aeadKeyTypes {
		t.Run(typeURL, func(t *testing.T) {
			r := registry.New(nil)
			require.NoError(t, aead.Register(r))

			a, _ := newAEAD(t, r, typeURL)

			plaintext := []byte("confidential payload")
			associated := []byte("header")

			ciphertext, err := a.Encrypt(plaintext, associated)
			require.NoError(t, err)
			assert.NotEqual(t, plaintext, ciphertext)

			decrypted, err := a.Decrypt(ciphertext, associated)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)

			_, err = a.Decrypt(ciphertext, []byte("wrong header"))
			assert.ErrorIs(t, err, interfaces.ErrDecryptionFailed,
				"Mismatched associated data must fail closed")

			tampered := append([]byte{}, ciphertext...)
			tampered[len(tampered)-1] ^= 1
			_, err = a.Decrypt(tampered, associated)
			assert.ErrorIs(t, err, interfaces.ErrDecryptionFailed,
				"Tampered ciphertext must fail closed")
		})
	}
}

func TestRotationKeepsOldCiphertextsReadable(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, aead.Register(r))

	a, m := newAEAD(t, r, aead.AESGCMKeyTypeURL)
	before, err := a.Encrypt([]byte("written before rotation"), nil)
	require.NoError(t, err)

	// Rotate to a fresh key, even of a different algorithm.
	_, err = m.Rotate(aead.ChaCha20Poly1305KeyTypeURL)
	require.NoError(t, err)
	rotated := wrapManager(t, r, m)

	after, err := rotated.Encrypt([]byte("written after rotation"), nil)
	require.NoError(t, err)

	got, err := rotated.Decrypt(before, nil)
	require.NoError(t, err, "Pre-rotation ciphertext should stay readable")
	assert.Equal(t, []byte("written before rotation"), got)

	got, err = rotated.Decrypt(after, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("written after rotation"), got)

	// The pre-rotation primitive cannot read post-rotation output.
	_, err = a.Decrypt(after, nil)
	assert.ErrorIs(t, err, interfaces.ErrDecryptionFailed)
}

func TestDisabledKeyCannotDecrypt(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, aead.Register(r))

	m := keyset.NewManager(r)
	oldID, err := m.Rotate(aead.AESGCMKeyTypeURL)
	require.NoError(t, err)
	old := wrapManager(t, r, m)
	ciphertext, err := old.Encrypt([]byte("sealed with the old key"), nil)
	require.NoError(t, err)

	_, err = m.Rotate(aead.AESGCMKeyTypeURL)
	require.NoError(t, err)
	require.NoError(t, m.Disable(oldID))
	rotated := wrapManager(t, r, m)

	_, err = rotated.Decrypt(ciphertext, nil)
	assert.ErrorIs(t, err, interfaces.ErrDecryptionFailed,
		"Ciphertext under a disabled key must not decrypt")
}

func TestWrapRequiresPrimary(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, aead.Register(r))

	material, err := r.NewKey(aead.AESGCMKeyTypeURL)
	require.NoError(t, err)
	p, err := registry.Primitive[interfaces.AEAD](r, aead.AESGCMKeyTypeURL, material)
	require.NoError(t, err)

	set := primitiveset.New[interfaces.AEAD]()
	_, err = set.Add(p, 1, primitiveset.StatusEnabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)

	_, err = registry.Wrap(r, set)
	require.Error(t, err, "Wrapping an AEAD set without a primary must fail")
	assert.True(t, interfaces.IsInvalidArgument(err))
}
