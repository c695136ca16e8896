package signature

import (
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/primitiveset"
)

// signerWrapper combines a Signer set into a single Signer that always
// signs with the primary key.
type signerWrapper struct{}

var _ interfaces.PrimitiveWrapper[interfaces.Signer] = (*signerWrapper)(nil)

func (*signerWrapper) Wrap(set *primitiveset.Set[interfaces.Signer]) (interfaces.Signer, error) {
	const op = "signature.signerWrapper"
	if set == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "primitive set must not be nil")
	}
	primary := set.Primary()
	if primary == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "signing requires a primitive set with a primary entry")
	}
	return &wrappedSigner{primary: primary}, nil
}

type wrappedSigner struct {
	primary *primitiveset.Entry[interfaces.Signer]
}

func (w *wrappedSigner) Sign(data []byte) ([]byte, error) {
	return w.primary.Primitive.Sign(data)
}

// verifierWrapper combines a Verifier set into a single Verifier that
// accepts a signature if any enabled key in the set validates it. Disabled
// and destroyed entries are skipped. No partial information is reported
// about which candidate failed.
type verifierWrapper struct{}

var _ interfaces.PrimitiveWrapper[interfaces.Verifier] = (*verifierWrapper)(nil)

func (*verifierWrapper) Wrap(set *primitiveset.Set[interfaces.Verifier]) (interfaces.Verifier, error) {
	const op = "signature.verifierWrapper"
	if set == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "primitive set must not be nil")
	}
	return &wrappedVerifier{entries: set.Entries()}, nil
}

type wrappedVerifier struct {
	entries []*primitiveset.Entry[interfaces.Verifier]
}

func (w *wrappedVerifier) Verify(signature, data []byte) error {
	for _, e := range w.entries {
		if e.Status != primitiveset.StatusEnabled {
			continue
		}
		if err := e.Primitive.Verify(signature, data); err == nil {
			return nil
		}
	}
	return interfaces.ErrVerificationFailed
}
