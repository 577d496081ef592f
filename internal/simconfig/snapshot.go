package simconfig

import (
	"fmt"
	"os"

	"github.com/Sereal/Sereal/Go/sereal"
)

// Sereal magic bytes, used to distinguish a binary snapshot from a YAML
// run configuration when a caller does not tell us which one a path
// holds. Mirrors internal/cache/sereal.go's IsSereal.
var (
	serealMagicStandard = []byte{0x3D, 0x73, 0x72, 0x6C} // =srl
	serealMagicHighBit  = []byte{0x3D, 0xF3, 0x72, 0x6C} // =\xF3rl
)

// IsSereal reports whether data begins with a Sereal document header.
func IsSereal(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return matchMagic(data[:4], serealMagicStandard) || matchMagic(data[:4], serealMagicHighBit)
}

func matchMagic(a, b []byte) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// WriteSnapshot marshals cfg through Sereal and writes it to path, for
// fast repeated startup of a parameter sweep whose element tables are
// too large to re-validate from YAML on every run.
func WriteSnapshot(path string, cfg *Config) error {
	data, err := sereal.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot %q: %w", path, err)
	}
	return nil
}

// LoadAuto reads path and decodes it as a Sereal snapshot if it carries
// Sereal's magic bytes, falling back to YAML otherwise.
func LoadAuto(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	if !IsSereal(data) {
		return Load(path)
	}

	var cfg Config
	if err := sereal.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding snapshot %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating snapshot %q: %w", path, err)
	}
	return &cfg, nil
}
