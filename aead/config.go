package aead

import (
	"github.com/keyweave/keyweave/config"
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/registry"
)

var (
	catalogue = &aeadCatalogue{}
	wrapper   = &aeadWrapper{}
)

// Latest returns the canonical registration table for the current AEAD
// configuration.
func Latest() config.Config {
	return config.New(
		config.NewEntry(CatalogueAEAD, PrimitiveAEAD, AESGCMKeyTypeURL, true, 0),
		config.NewEntry(CatalogueAEAD, PrimitiveAEAD, ChaCha20Poly1305KeyTypeURL, true, 0),
	)
}

// Register installs the AEAD catalogue, wrapper and key managers into the
// registry. Safe to call more than once.
func Register(r *registry.Registry) error {
	if err := registry.AddCatalogue[interfaces.AEAD](r, CatalogueAEAD, catalogue); err != nil {
		return err
	}
	if err := registry.RegisterPrimitiveWrapper[interfaces.AEAD](r, wrapper); err != nil {
		return err
	}
	return config.Register(r, Latest())
}
