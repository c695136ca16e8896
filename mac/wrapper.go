package mac

import (
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/primitiveset"
)

// macWrapper combines a MAC set into a single MAC. Tag computation uses the
// primary key only; verification tries every enabled key in keyset order.
type macWrapper struct{}

var _ interfaces.PrimitiveWrapper[interfaces.MAC] = (*macWrapper)(nil)

func (*macWrapper) Wrap(set *primitiveset.Set[interfaces.MAC]) (interfaces.MAC, error) {
	const op = "mac.macWrapper"
	if set == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "primitive set must not be nil")
	}
	if set.Primary() == nil {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "tag computation requires a primitive set with a primary entry")
	}
	return &wrappedMAC{primary: set.Primary(), entries: set.Entries()}, nil
}

type wrappedMAC struct {
	primary *primitiveset.Entry[interfaces.MAC]
	entries []*primitiveset.Entry[interfaces.MAC]
}

func (w *wrappedMAC) ComputeMAC(data []byte) ([]byte, error) {
	return w.primary.Primitive.ComputeMAC(data)
}

func (w *wrappedMAC) VerifyMAC(mac, data []byte) error {
	for _, e := range w.entries {
		if e.Status != primitiveset.StatusEnabled {
			continue
		}
		if err := e.Primitive.VerifyMAC(mac, data); err == nil {
			return nil
		}
	}
	return interfaces.ErrVerificationFailed
}
