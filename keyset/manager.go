package keyset

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/keyweave/keyweave/primitiveset"
	"github.com/keyweave/keyweave/registry"
)

// Manager builds and mutates a keyset, generating key material through the
// registry's registered key managers. A Manager is not safe for concurrent
// use; take a Handle snapshot to share.
type Manager struct {
	reg       *registry.Registry
	keys      []Key
	primaryID uint32
}

// NewManager creates a manager with an empty keyset.
func NewManager(r *registry.Registry) *Manager {
	return &Manager{reg: r}
}

// NewManagerFromHandle creates a manager seeded with an existing keyset.
func NewManagerFromHandle(r *registry.Registry, h *Handle) *Manager {
	return &Manager{reg: r, keys: h.Keys(), primaryID: h.PrimaryID()}
}

// Rotate generates a new key for the given type URL and makes it primary.
// Existing keys stay enabled, so primitives wrapped from the keyset keep
// accepting their outputs.
func (m *Manager) Rotate(typeURL string) (uint32, error) {
	id, err := m.Add(typeURL)
	if err != nil {
		return 0, err
	}
	m.primaryID = id
	return id, nil
}

// Add generates a new enabled key for the given type URL without changing
// the primary. Fails if the registry forbids key generation for the type.
func (m *Manager) Add(typeURL string) (uint32, error) {
	material, err := m.reg.NewKey(typeURL)
	if err != nil {
		return 0, err
	}
	id, err := m.newKeyID()
	if err != nil {
		return 0, err
	}
	m.keys = append(m.keys, Key{
		TypeURL:  typeURL,
		Material: material,
		ID:       id,
		Status:   primitiveset.StatusEnabled,
		Prefix:   primitiveset.PrefixVersioned,
	})
	return id, nil
}

// SetPrimary designates an enabled key as primary.
func (m *Manager) SetPrimary(id uint32) error {
	k := m.find(id)
	if k == nil {
		return fmt.Errorf("key %d is not in the keyset", id)
	}
	if k.Status != primitiveset.StatusEnabled {
		return fmt.Errorf("key %d is not enabled", id)
	}
	m.primaryID = id
	return nil
}

// Enable re-enables a disabled key. Destroyed keys cannot be enabled.
func (m *Manager) Enable(id uint32) error {
	k := m.find(id)
	if k == nil {
		return fmt.Errorf("key %d is not in the keyset", id)
	}
	if k.Status == primitiveset.StatusDestroyed {
		return fmt.Errorf("key %d is destroyed", id)
	}
	k.Status = primitiveset.StatusEnabled
	return nil
}

// Disable excludes a key from primitive operations without deleting its
// material. The primary key cannot be disabled.
func (m *Manager) Disable(id uint32) error {
	k := m.find(id)
	if k == nil {
		return fmt.Errorf("key %d is not in the keyset", id)
	}
	if id == m.primaryID {
		return errors.New("cannot disable the primary key")
	}
	if k.Status == primitiveset.StatusDestroyed {
		return fmt.Errorf("key %d is destroyed", id)
	}
	k.Status = primitiveset.StatusDisabled
	return nil
}

// Destroy deletes a key's material, keeping only its metadata. The primary
// key cannot be destroyed.
func (m *Manager) Destroy(id uint32) error {
	k := m.find(id)
	if k == nil {
		return fmt.Errorf("key %d is not in the keyset", id)
	}
	if id == m.primaryID {
		return errors.New("cannot destroy the primary key")
	}
	k.Material = nil
	k.Status = primitiveset.StatusDestroyed
	return nil
}

// Handle returns an immutable snapshot of the current keyset.
func (m *Manager) Handle() (*Handle, error) {
	return NewHandle(m.keys, m.primaryID)
}

func (m *Manager) find(id uint32) *Key {
	for i := range m.keys {
		if m.keys[i].ID == id {
			return &m.keys[i]
		}
	}
	return nil
}

// newKeyID draws random nonzero key IDs until one not already in the keyset
// comes up.
func (m *Manager) newKeyID() (uint32, error) {
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return 0, fmt.Errorf("key ID generation failed: %w", err)
		}
		id := binary.BigEndian.Uint32(buf[:])
		if id == 0 {
			continue
		}
		if m.find(id) == nil {
			return id, nil
		}
	}
}
