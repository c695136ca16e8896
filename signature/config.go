package signature

import (
	"github.com/keyweave/keyweave/config"
	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/registry"
)

// Registered values are package-level singletons so repeated Register calls
// present the same catalogue and wrapper instances to the registry's
// identity-based equivalence check.
var (
	signCatalogue   = &signerCatalogue{}
	verifyCatalogue = &verifierCatalogue{}
	signWrapper     = &signerWrapper{}
	verifyWrapper   = &verifierWrapper{}
)

// Latest returns the canonical registration table for the current signature
// configuration: one sign entry and one verify entry per supported
// algorithm, adjacent, in a fixed order. The result is identical on every
// call.
func Latest() config.Config {
	keyTypePairs := [][2]string{
		{ECDSAP256PrivateKeyTypeURL, ECDSAP256PublicKeyTypeURL},
		{Ed25519PrivateKeyTypeURL, Ed25519PublicKeyTypeURL},
		{Ed448PrivateKeyTypeURL, Ed448PublicKeyTypeURL},
	}

	entries := make([]config.Entry, 0, 2*len(keyTypePairs))
	for _, pair := range keyTypePairs {
		entries = append(entries,
			config.NewEntry(CatalogueSign, PrimitiveSigner, pair[0], true, 0),
			config.NewEntry(CatalogueVerify, PrimitiveVerifier, pair[1], true, 0),
		)
	}
	return config.New(entries...)
}

// Register installs the signature catalogues, the Signer and Verifier
// wrappers, and the key managers from Latest into the registry. Calling it
// twice without an intervening Reset succeeds and leaves the registry in
// the same observable state. It fails with a KindAlreadyExists error if a
// different catalogue already occupies one of the signature catalogue
// names, without registering any key managers.
func Register(r *registry.Registry) error {
	if err := registry.AddCatalogue[interfaces.Signer](r, CatalogueSign, signCatalogue); err != nil {
		return err
	}
	if err := registry.AddCatalogue[interfaces.Verifier](r, CatalogueVerify, verifyCatalogue); err != nil {
		return err
	}
	if err := registry.RegisterPrimitiveWrapper[interfaces.Signer](r, signWrapper); err != nil {
		return err
	}
	if err := registry.RegisterPrimitiveWrapper[interfaces.Verifier](r, verifyWrapper); err != nil {
		return err
	}
	return config.Register(r, Latest())
}
