package mac

import (
	"strings"

	"github.com/keyweave/keyweave/config"
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/registry"
)

// Catalogue and primitive names used in MAC registration entries.
const (
	CatalogueMAC = "KeyweaveMAC"
	PrimitiveMAC = "MAC"
)

type macCatalogue struct{}

var _ interfaces.Catalogue[interfaces.MAC] = (*macCatalogue)(nil)

func (*macCatalogue) GetKeyManager(typeURL, primitiveName string, minVersion uint32) (interfaces.KeyManager, error) {
	const op = "mac.macCatalogue"
	if !strings.EqualFold(primitiveName, PrimitiveMAC) {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "catalogue serves %q, not %q", PrimitiveMAC, primitiveName)
	}
	if typeURL != HMACSHA256KeyTypeURL {
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager for type URL %q", typeURL)
	}
	km := new(hmacSHA256KeyManager)
	if km.Version() < minVersion {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "best available manager for %q is version %d, below the requested floor %d", typeURL, km.Version(), minVersion)
	}
	return km, nil
}

var (
	catalogue = &macCatalogue{}
	wrapper   = &macWrapper{}
)

// Latest returns the canonical registration table for the current MAC
// configuration.
func Latest() config.Config {
	return config.New(
		config.NewEntry(CatalogueMAC, PrimitiveMAC, HMACSHA256KeyTypeURL, true, 0),
	)
}

// Register installs the MAC catalogue, wrapper and key manager into the
// registry. Safe to call more than once.
func Register(r *registry.Registry) error {
	if err := registry.AddCatalogue[interfaces.MAC](r, CatalogueMAC, catalogue); err != nil {
		return err
	}
	if err := registry.RegisterPrimitiveWrapper[interfaces.MAC](r, wrapper); err != nil {
		return err
	}
	return config.Register(r, Latest())
}
