package primitiveset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyweave/keyweave/primitiveset"
)

type stub struct {
	name string
}

func TestAddAndOrder(t *testing.T) {
	set := primitiveset.New[*stub]()

	a, err := set.Add(&stub{"a"}, 1, primitiveset.StatusEnabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)
	b, err := set.Add(&stub{"b"}, 2, primitiveset.StatusDisabled, primitiveset.PrefixRaw)
	require.NoError(t, err)
	c, err := set.Add(nil, 3, primitiveset.StatusDestroyed, primitiveset.PrefixLegacy)
	require.NoError(t, err, "Destroyed entries may be added without a primitive")

	entries := set.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, []*primitiveset.Entry[*stub]{a, b, c}, entries, "Entries should preserve insertion order")

	enabled := set.EnabledEntries()
	require.Len(t, enabled, 1)
	assert.Equal(t, a, enabled[0])
	assert.Equal(t, 3, set.Len())
}

func TestAddRejectsInvalidMetadata(t *testing.T) {
	set := primitiveset.New[*stub]()

	_, err := set.Add(&stub{"a"}, 1, primitiveset.StatusUnknown, primitiveset.PrefixVersioned)
	assert.Error(t, err, "Unknown status should be rejected")

	_, err = set.Add(&stub{"a"}, 1, primitiveset.StatusEnabled, primitiveset.PrefixUnknown)
	assert.Error(t, err, "Unknown prefix should be rejected")
}

func TestSetPrimary(t *testing.T) {
	set := primitiveset.New[*stub]()
	enabled, err := set.Add(&stub{"a"}, 1, primitiveset.StatusEnabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)
	disabled, err := set.Add(&stub{"b"}, 2, primitiveset.StatusDisabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)

	assert.Nil(t, set.Primary(), "A fresh set has no primary")

	err = set.SetPrimary(disabled)
	assert.Error(t, err, "A disabled entry cannot be primary")

	err = set.SetPrimary(nil)
	assert.Error(t, err, "Nil cannot be primary")

	foreign := &primitiveset.Entry[*stub]{Primitive: &stub{"x"}, KeyID: 9, Status: primitiveset.StatusEnabled, Prefix: primitiveset.PrefixVersioned}
	err = set.SetPrimary(foreign)
	assert.Error(t, err, "An entry outside the set cannot be primary")

	require.NoError(t, set.SetPrimary(enabled))
	assert.Equal(t, enabled, set.Primary())
}

func TestEntriesIsACopy(t *testing.T) {
	set := primitiveset.New[*stub]()
	_, err := set.Add(&stub{"a"}, 1, primitiveset.StatusEnabled, primitiveset.PrefixVersioned)
	require.NoError(t, err)

	entries := set.Entries()
	entries[0] = nil
	require.NotNil(t, set.Entries()[0], "Mutating the returned slice must not affect the set")
}
