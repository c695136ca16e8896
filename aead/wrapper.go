package aead

import (
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/primitiveset"
)

// aeadWrapper combines an AEAD set into a single AEAD. Encryption uses the
// primary key only; decryption tries every enabled key in keyset order and
// reports a single opaque failure if none succeeds.
type aeadWrapper struct{}

var _ interfaces.PrimitiveWrapper[interfaces.AEAD] = (*aeadWrapper)(nil)

func (*aeadWrapper) Wrap(set *primitiveset.Set[interfaces.AEAD]) (interfaces.AEAD, error) {
	const op = "aead.aeadWrapper"
	if set == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "primitive set must not be nil")
	}
	if set.Primary() == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "encryption requires a primitive set with a primary entry")
	}
	return &wrappedAEAD{primary: set.Primary(), entries: set.Entries()}, nil
}

type wrappedAEAD struct {
	primary *primitiveset.Entry[interfaces.AEAD]
	entries []*primitiveset.Entry[interfaces.AEAD]
}

func (w *wrappedAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	return w.primary.Primitive.Encrypt(plaintext, associatedData)
}

func (w *wrappedAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	for _, e := range w.entries {
		if e.Status != primitiveset.StatusEnabled {
			continue
		}
		if plaintext, err := e.Primitive.Decrypt(ciphertext, associatedData); err == nil {
			return plaintext, nil
		}
	}
	return nil, interfaces.ErrDecryptionFailed
}
