package ir

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the serialized module format changes
const moduleSchemaVersion uint16 = 1

// modulePayload wraps a module with a schema version for safe
// invalidation when the format changes.
type modulePayload struct {
	Schema uint16
	Module *Module
}

// EncodeModule serializes a module to the on-disk msgpack format.
func EncodeModule(m *Module) ([]byte, error) {
	data, err := msgpack.Marshal(modulePayload{
		Schema: moduleSchemaVersion,
		Module: m,
	})
	if err != nil {
		return nil, fmt.Errorf("encode module %s: %w", m.Name, err)
	}
	return data, nil
}

// DecodeModule deserializes a module and rebuilds derived indexes.
func DecodeModule(data []byte) (*Module, error) {
	var payload modulePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}
	if payload.Schema != moduleSchemaVersion {
		return nil, fmt.Errorf("decode module: schema version %d, want %d", payload.Schema, moduleSchemaVersion)
	}
	if payload.Module == nil {
		return nil, fmt.Errorf("decode module: empty payload")
	}
	payload.Module.rebuildIndex()
	return payload.Module, nil
}

// SaveModule writes a module to path.
func SaveModule(path string, m *Module) error {
	data, err := EncodeModule(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write module %s: %w", path, err)
	}
	return nil
}

// LoadModule reads a module from path.
func LoadModule(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", path, err)
	}
	m, err := DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
