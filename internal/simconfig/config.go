// Package simconfig loads the structured description of a simulation run
// — genome length, polymerase and ribosome species, and the ordered list
// of promoters, genes, and terminators — consumed by the registration
// phase that builds an internal/polymer.Genome.
package simconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// PolymeraseSpec describes a species of polymerase (or ribosome) and how
// many copies of it the scheduler should create.
type PolymeraseSpec struct {
	Name       string  `mapstructure:"name"`
	Footprint  int     `mapstructure:"footprint"`
	Speed      float64 `mapstructure:"speed"`
	CopyNumber int     `mapstructure:"copy_number"`
	Promoter   string  `mapstructure:"promoter"`
}

// PromoterSpec describes a promoter or other genome-level binding site.
type PromoterSpec struct {
	Name         string             `mapstructure:"name"`
	Start        int                `mapstructure:"start"`
	Stop         int                `mapstructure:"stop"`
	Interactions map[string]float64 `mapstructure:"interactions"`
}

// TerminatorSpec describes a terminator or other genome-level release
// site.
type TerminatorSpec struct {
	Name       string             `mapstructure:"name"`
	Start      int                `mapstructure:"start"`
	Stop       int                `mapstructure:"stop"`
	Efficiency map[string]float64 `mapstructure:"efficiency"`
}

// GeneSpec describes a gene's coding region and the ribosome binding
// site upstream of it, both only ever realized on transcripts.
type GeneSpec struct {
	Name        string  `mapstructure:"name"`
	Start       int     `mapstructure:"start"`
	Stop        int     `mapstructure:"stop"`
	RBSStart    int     `mapstructure:"rbs_start"`
	RBSStop     int     `mapstructure:"rbs_stop"`
	RBSStrength float64 `mapstructure:"rbs_strength"`
}

// MaskSpec describes the genome's initial mask: the unsynthesized suffix
// and the polymerases allowed to push it back.
type MaskSpec struct {
	Start                  int      `mapstructure:"start"`
	InteractingPolymerases []string `mapstructure:"interacting_polymerases"`
}

// Config is the structured description of a single simulation run.
type Config struct {
	GenomeName  string            `mapstructure:"genome_name"`
	GenomeLength int              `mapstructure:"genome_length"`
	Polymerases []PolymeraseSpec  `mapstructure:"polymerases"`
	Promoters   []PromoterSpec    `mapstructure:"promoters"`
	Terminators []TerminatorSpec  `mapstructure:"terminators"`
	Genes       []GeneSpec        `mapstructure:"genes"`
	Mask        *MaskSpec         `mapstructure:"mask"`
	Weights     []float64         `mapstructure:"weights"`
	Seed        struct {
		Seed1 uint64 `mapstructure:"seed1"`
		Seed2 uint64 `mapstructure:"seed2"`
	} `mapstructure:"seed"`
}

// Load reads a YAML run configuration from path using viper, exactly as
// cmd/vibe-vep's config command loads ~/.vibe-vep.yaml, and unmarshals it
// into a Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %q: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks the structural invariants Load and LoadSnapshot both
// need before the config can be handed to the registration phase.
func (c *Config) Validate() error {
	if c.GenomeLength <= 0 {
		return fmt.Errorf("genome_length must be positive, got %d", c.GenomeLength)
	}
	if c.GenomeName == "" {
		return fmt.Errorf("genome_name must not be empty")
	}
	for i, pol := range c.Polymerases {
		if pol.Name == "" {
			return fmt.Errorf("polymerases[%d]: name must not be empty", i)
		}
		if pol.Footprint <= 0 {
			return fmt.Errorf("polymerases[%d] %q: footprint must be positive, got %d", i, pol.Name, pol.Footprint)
		}
		if pol.CopyNumber < 0 {
			return fmt.Errorf("polymerases[%d] %q: copy_number must not be negative, got %d", i, pol.Name, pol.CopyNumber)
		}
	}
	return nil
}
