package registry_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/primitiveset"
	"github.com/keyweave/keyweave/registry"
)

const testTypeURL = "type.keyweave.dev/test.FakeSignerKey"

type fakeSigner struct {
	id string
}

func (f *fakeSigner) Sign(data []byte) ([]byte, error) {
	return []byte(f.id), nil
}

type fakeSignerKeyManager struct {
	typeURL string
	version uint32
}

func (f *fakeSignerKeyManager) Primitive(serializedKey []byte) (any, error) {
	return &fakeSigner{id: string(serializedKey)}, nil
}

func (f *fakeSignerKeyManager) NewKey() ([]byte, error) {
	return []byte("fresh-key-material"), nil
}

func (f *fakeSignerKeyManager) DoesSupport(typeURL string) bool { return typeURL == f.typeURL }
func (f *fakeSignerKeyManager) TypeURL() string                 { return f.typeURL }
func (f *fakeSignerKeyManager) Version() uint32                 { return f.version }

// otherSignerKeyManager is a distinct concrete type serving the same type
// URL, used to provoke manager conflicts.
type otherSignerKeyManager struct {
	fakeSignerKeyManager
}

type fakeCatalogue struct {
	bestVersion uint32
}

func (c *fakeCatalogue) GetKeyManager(typeURL, primitiveName string, minVersion uint32) (interfaces.KeyManager, error) {
	if minVersion > c.bestVersion {
		return nil, interfaces.Errorf("fakeCatalogue", interfaces.KindInvalidArgument, "best available version is %d, below the requested floor %d", c.bestVersion, minVersion)
	}
	return &fakeSignerKeyManager{typeURL: typeURL, version: c.bestVersion}, nil
}

// fakeSignerWrapper carries an unused field so the struct is not zero-size:
// pointers to distinct zero-size allocations may compare equal, which would
// defeat identity checks on separately constructed wrapper values.
type fakeSignerWrapper struct {
	_ byte
}

func (*fakeSignerWrapper) Wrap(set *primitiveset.Set[interfaces.Signer]) (interfaces.Signer, error) {
	if set.Primary() == nil {
		return nil, errors.New("no primary")
	}
	return set.Primary().Primitive, nil
}

func TestAddCatalogue(t *testing.T) {
	r := registry.New(nil)
	c1 := &fakeCatalogue{}
	c2 := &fakeCatalogue{}

	err := registry.AddCatalogue[interfaces.Signer](r, "TestCatalogue", c1)
	require.NoError(t, err, "First registration should succeed")

	err = registry.AddCatalogue[interfaces.Signer](r, "TestCatalogue", c1)
	assert.NoError(t, err, "Re-adding the same catalogue value should be a no-op")

	err = registry.AddCatalogue[interfaces.Signer](r, "TestCatalogue", c2)
	require.Error(t, err, "A different catalogue under the same name must be rejected")
	assert.True(t, interfaces.IsAlreadyExists(err), "Conflict should be KindAlreadyExists, got: %v", err)
}

func TestAddCatalogueInvalidArguments(t *testing.T) {
	r := registry.New(nil)

	err := registry.AddCatalogue[interfaces.Signer](r, "", &fakeCatalogue{})
	assert.True(t, interfaces.IsInvalidArgument(err), "Empty name should be rejected")

	err = registry.AddCatalogue[interfaces.Signer](r, "TestCatalogue", nil)
	assert.True(t, interfaces.IsInvalidArgument(err), "Nil catalogue should be rejected")
}

func TestRegisterKeyManager(t *testing.T) {
	r := registry.New(nil)
	km := &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}

	err := registry.RegisterKeyManager[interfaces.Signer](r, km, true)
	require.NoError(t, err, "First registration should succeed")

	// Same concrete type, same version: no-op success.
	err = registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}, true)
	assert.NoError(t, err, "Re-registering an equivalent manager should succeed")

	// Version upgrade is allowed.
	err = registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL, version: 1}, true)
	assert.NoError(t, err, "Registering a higher version should succeed")

	// Downgrade is not.
	err = registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}, true)
	require.Error(t, err, "Version downgrade must be rejected")
	assert.True(t, interfaces.IsAlreadyExists(err), "Downgrade should be KindAlreadyExists, got: %v", err)

	// A different concrete implementation is a conflict.
	other := &otherSignerKeyManager{fakeSignerKeyManager{typeURL: testTypeURL, version: 2}}
	err = registry.RegisterKeyManager[interfaces.Signer](r, other, true)
	require.Error(t, err, "A different manager implementation must be rejected")
	assert.True(t, interfaces.IsAlreadyExists(err), "Manager conflict should be KindAlreadyExists, got: %v", err)
}

func TestRegisterKeyManagerKindConflict(t *testing.T) {
	r := registry.New(nil)
	km := &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}

	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, km, true))

	err := registry.RegisterKeyManager[interfaces.Verifier](r, &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}, true)
	require.Error(t, err, "Same type URL under a different primitive kind must be rejected")
	assert.True(t, interfaces.IsAlreadyExists(err), "Kind conflict should be KindAlreadyExists, got: %v", err)
}

func TestNewKeyAllowedFlag(t *testing.T) {
	r := registry.New(nil)
	km := &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}

	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, km, true))

	material, err := r.NewKey(testTypeURL)
	require.NoError(t, err, "NewKey should succeed while generation is allowed")
	assert.NotEmpty(t, material)

	// Narrowing the flag is allowed.
	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, km, false))

	_, err = r.NewKey(testTypeURL)
	require.Error(t, err, "NewKey must fail once generation is forbidden")
	assert.True(t, interfaces.IsInvalidArgument(err), "Forbidden generation should be KindInvalidArgument, got: %v", err)

	// Re-widening is not.
	err = registry.RegisterKeyManager[interfaces.Signer](r, km, true)
	require.Error(t, err, "Re-registration must not make key generation more permissive")
	assert.True(t, interfaces.IsAlreadyExists(err))
}

func TestGetKeyManager(t *testing.T) {
	r := registry.New(nil)

	_, err := registry.GetKeyManager[interfaces.Signer](r, testTypeURL)
	require.Error(t, err, "Lookup on an empty registry must fail")
	assert.True(t, interfaces.IsNotFound(err), "Missing registration should be KindNotFound, got: %v", err)

	km := &fakeSignerKeyManager{typeURL: testTypeURL, version: 0}
	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, km, true))

	got, err := registry.GetKeyManager[interfaces.Signer](r, testTypeURL)
	require.NoError(t, err)
	assert.True(t, got.DoesSupport(testTypeURL), "Returned manager should support its type URL")

	// The same type URL requested for a different primitive kind is not
	// found, not a conflict.
	_, err = registry.GetKeyManager[interfaces.Verifier](r, testTypeURL)
	require.Error(t, err)
	assert.True(t, interfaces.IsNotFound(err), "Kind mismatch should be KindNotFound, got: %v", err)
}

func TestRegisterFromCatalogue(t *testing.T) {
	r := registry.New(nil)

	err := r.RegisterFromCatalogue("NoSuchCatalogue", "Signer", testTypeURL, 0, true)
	require.Error(t, err, "Registration through a missing catalogue must fail")
	assert.True(t, interfaces.IsNotFound(err), "Missing catalogue should be KindNotFound, got: %v", err)

	require.NoError(t, registry.AddCatalogue[interfaces.Signer](r, "TestCatalogue", &fakeCatalogue{bestVersion: 1}))

	err = r.RegisterFromCatalogue("TestCatalogue", "Signer", testTypeURL, 2, true)
	require.Error(t, err, "A version floor above the best available implementation must be rejected")

	err = r.RegisterFromCatalogue("TestCatalogue", "Signer", testTypeURL, 1, true)
	require.NoError(t, err)

	_, err = registry.GetKeyManager[interfaces.Signer](r, testTypeURL)
	assert.NoError(t, err, "Manager from the catalogue should be registered")
}

func TestWrap(t *testing.T) {
	r := registry.New(nil)

	set := primitiveset.New[interfaces.Signer]()
	entry, err := set.Add(&fakeSigner{id: "a"}, 1, primitiveset.StatusEnabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)
	require.NoError(t, set.SetPrimary(entry))

	_, err = registry.Wrap(r, set)
	require.Error(t, err, "Wrap without a registered wrapper must fail")
	assert.True(t, interfaces.IsNotFound(err), "Missing wrapper should be KindNotFound, got: %v", err)

	w1 := &fakeSignerWrapper{}
	w2 := &fakeSignerWrapper{}
	require.NoError(t, registry.RegisterPrimitiveWrapper[interfaces.Signer](r, w1))
	assert.NoError(t, registry.RegisterPrimitiveWrapper[interfaces.Signer](r, w1),
		"Re-registering the same wrapper value should be a no-op")

	err = registry.RegisterPrimitiveWrapper[interfaces.Signer](r, w2)
	require.Error(t, err, "A different wrapper for an already-wrapped kind must be rejected")
	assert.True(t, interfaces.IsAlreadyExists(err))

	signer, err := registry.Wrap(r, set)
	require.NoError(t, err)
	out, err := signer.Sign([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), out, "Wrapped signer should delegate to the primary entry")
}

func TestReset(t *testing.T) {
	r := registry.New(nil)

	require.NoError(t, registry.AddCatalogue[interfaces.Signer](r, "TestCatalogue", &fakeCatalogue{}))
	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL}, true))
	require.NoError(t, registry.RegisterPrimitiveWrapper[interfaces.Signer](r, &fakeSignerWrapper{}))

	r.Reset()

	_, err := registry.GetKeyManager[interfaces.Signer](r, testTypeURL)
	assert.True(t, interfaces.IsNotFound(err), "Key manager lookups after Reset should be KindNotFound")

	_, err = r.NewKey(testTypeURL)
	assert.True(t, interfaces.IsNotFound(err), "NewKey after Reset should be KindNotFound")

	err = r.RegisterFromCatalogue("TestCatalogue", "Signer", testTypeURL, 0, true)
	assert.True(t, interfaces.IsNotFound(err), "Catalogue lookups after Reset should be KindNotFound")

	set := primitiveset.New[interfaces.Signer]()
	entry, err := set.Add(&fakeSigner{id: "a"}, 1, primitiveset.StatusEnabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)
	require.NoError(t, set.SetPrimary(entry))
	_, err = registry.Wrap(r, set)
	assert.True(t, interfaces.IsNotFound(err), "Wrapper lookups after Reset should be KindNotFound")
}

func TestPrimitive(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL}, true))

	signer, err := registry.Primitive[interfaces.Signer](r, testTypeURL, []byte("key-material"))
	require.NoError(t, err)
	out, err := signer.Sign([]byte("data"))
	require.NoError(t, err)
	assert.Equal(t, []byte("key-material"), out)

	_, err = registry.Primitive[interfaces.Verifier](r, testTypeURL, []byte("key-material"))
	assert.True(t, interfaces.IsNotFound(err), "Construction for the wrong kind should be KindNotFound")
}

func TestConcurrentLookupsAndRegistrations(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL}, true))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_, err := registry.GetKeyManager[interfaces.Signer](r, testTypeURL)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			// Equivalent re-registration racing the lookups.
			err := registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL}, true)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
}

func TestStats(t *testing.T) {
	r := registry.New(nil)
	require.NoError(t, registry.RegisterKeyManager[interfaces.Signer](r, &fakeSignerKeyManager{typeURL: testTypeURL}, true))

	before := r.Stats()
	_, _ = registry.GetKeyManager[interfaces.Signer](r, testTypeURL)
	after := r.Stats()

	assert.Equal(t, uint64(1), after.Registrations, "One registration expected")
	assert.Greater(t, after.Lookups, before.Lookups, "Lookup counter should advance")
}
