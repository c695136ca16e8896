package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/keyweave/keyweave/keyset"
	"github.com/keyweave/keyweave/primitiveset"
)

// keysetFile is the on-disk YAML layout of a keyset. Key material is raw
// bytes, which YAML encodes as base64. The id is a file-level identifier
// for operational bookkeeping and plays no role in dispatch.
type keysetFile struct {
	ID           string        `yaml:"id"`
	PrimaryKeyID uint32        `yaml:"primary_key_id,omitempty"`
	Keys         []keysetEntry `yaml:"keys"`
}

type keysetEntry struct {
	TypeURL  string `yaml:"type_url"`
	Material []byte `yaml:"material,omitempty"`
	KeyID    uint32 `yaml:"key_id"`
	Status   string `yaml:"status"`
	Prefix   string `yaml:"prefix"`
}

func statusFromString(s string) (primitiveset.KeyStatus, error) {
	switch s {
	case "enabled":
		return primitiveset.StatusEnabled, nil
	case "disabled":
		return primitiveset.StatusDisabled, nil
	case "destroyed":
		return primitiveset.StatusDestroyed, nil
	default:
		return primitiveset.StatusUnknown, fmt.Errorf("unknown key status %q", s)
	}
}

func prefixFromString(s string) (primitiveset.OutputPrefix, error) {
	switch s {
	case "versioned":
		return primitiveset.PrefixVersioned, nil
	case "legacy":
		return primitiveset.PrefixLegacy, nil
	case "raw":
		return primitiveset.PrefixRaw, nil
	case "compat":
		return primitiveset.PrefixCompat, nil
	default:
		return primitiveset.PrefixUnknown, fmt.Errorf("unknown output prefix %q", s)
	}
}

func loadKeysetFile(path string) (*keyset.Handle, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read keyset file: %w", err)
	}

	var file keysetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("failed to parse keyset file: %w", err)
	}

	keys := make([]keyset.Key, 0, len(file.Keys))
	for _, e := range file.Keys {
		status, err := statusFromString(e.Status)
		if err != nil {
			return nil, "", err
		}
		prefix, err := prefixFromString(e.Prefix)
		if err != nil {
			return nil, "", err
		}
		keys = append(keys, keyset.Key{
			TypeURL:  e.TypeURL,
			Material: e.Material,
			ID:       e.KeyID,
			Status:   status,
			Prefix:   prefix,
		})
	}

	handle, err := keyset.NewHandle(keys, file.PrimaryKeyID)
	if err != nil {
		return nil, "", fmt.Errorf("invalid keyset file: %w", err)
	}
	return handle, file.ID, nil
}

// storeKeysetFile writes the handle to path. An empty id assigns a fresh
// UUID; rewrites of an existing keyset keep its id.
func storeKeysetFile(path string, handle *keyset.Handle, id string) error {
	if id == "" {
		id = uuid.Must(uuid.NewRandom()).String()
	}

	file := keysetFile{
		ID:           id,
		PrimaryKeyID: handle.PrimaryID(),
	}
	for _, k := range handle.Keys() {
		file.Keys = append(file.Keys, keysetEntry{
			TypeURL:  k.TypeURL,
			Material: k.Material,
			KeyID:    k.ID,
			Status:   k.Status.String(),
			Prefix:   k.Prefix.String(),
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to serialize keyset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keyset file: %w", err)
	}
	return nil
}
