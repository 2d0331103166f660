package signer

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// tables.yaml carries the 256-entry mixing table consumed by the gorgon
// signature and the 32-byte obfuscation key consumed by the ladon token.
//
//go:embed tables.yaml
var rawTables []byte

// constTables holds the parsed, immutable signing constants.
type constTables struct {
	gorgon [256]uint32
	ladon  [32]byte
}

// loadTables parses the embedded asset exactly once. Every signer calls
// it before doing any work, so a corrupt asset fails every call with
// ErrInitialization rather than producing wrong signatures.
var loadTables = sync.OnceValues(parseTables)

func parseTables() (*constTables, error) {
	var doc struct {
		GorgonTable []uint32 `yaml:"gorgon_table"`
		LadonKey    string   `yaml:"ladon_key"`
	}

	if err := yaml.Unmarshal(rawTables, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	t := &constTables{}

	if len(doc.GorgonTable) != len(t.gorgon) {
		return nil, fmt.Errorf("%w: gorgon table has %d entries, want %d",
			ErrInitialization, len(doc.GorgonTable), len(t.gorgon))
	}
	copy(t.gorgon[:], doc.GorgonTable)

	key, err := hex.DecodeString(doc.LadonKey)
	if err != nil {
		return nil, fmt.Errorf("%w: ladon key: %v", ErrInitialization, err)
	}
	if len(key) != len(t.ladon) {
		return nil, fmt.Errorf("%w: ladon key has %d bytes, want %d",
			ErrInitialization, len(key), len(t.ladon))
	}
	copy(t.ladon[:], key)

	return t, nil
}
