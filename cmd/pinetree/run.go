package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benjaminjack/pinetree/internal/polymer"
	"github.com/benjaminjack/pinetree/internal/randutil"
	"github.com/benjaminjack/pinetree/internal/simconfig"
	"github.com/benjaminjack/pinetree/internal/species"
	"github.com/benjaminjack/pinetree/internal/tracestore"
)

// executable is the subset of internal/polymer.Genome/Transcript's
// promoted Polymer methods the outer scheduler in this command needs. It
// exists here, not in internal/polymer, because sequencing polymer
// executions across a whole simulation is explicitly out of the core's
// scope.
type executable interface {
	Name() string
	PropSum() float64
	SpeciesLog() map[string]int
	Execute() error
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		tracePath  string
		ticks      int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation from a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, configPath, tracePath, ticks)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "run configuration file (YAML or Sereal snapshot)")
	cmd.Flags().StringVarP(&tracePath, "trace", "t", "", "DuckDB trace database path (default: in-memory)")
	cmd.Flags().IntVarP(&ticks, "ticks", "n", 1000, "number of Gillespie steps to simulate")
	cmd.MarkFlagRequired("config")

	return cmd
}

func runSimulation(cmd *cobra.Command, configPath, tracePath string, ticks int) error {
	cfg, err := simconfig.LoadAuto(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	randutil.Seed(cfg.Seed.Seed1, cfg.Seed.Seed2)

	tracker := species.NewInMemoryTracker()
	genome := polymer.NewGenome(cfg.GenomeName, cfg.GenomeLength, tracker)

	for _, p := range cfg.Promoters {
		if err := genome.AddPromoter(p.Name, p.Start, p.Stop, p.Interactions); err != nil {
			return fmt.Errorf("adding promoter %q: %w", p.Name, err)
		}
	}
	for _, term := range cfg.Terminators {
		if err := genome.AddTerminator(term.Name, term.Start, term.Stop, term.Efficiency); err != nil {
			return fmt.Errorf("adding terminator %q: %w", term.Name, err)
		}
	}
	for _, gene := range cfg.Genes {
		if err := genome.AddGene(gene.Name, gene.Start, gene.Stop, gene.RBSStart, gene.RBSStop, gene.RBSStrength); err != nil {
			return fmt.Errorf("adding gene %q: %w", gene.Name, err)
		}
	}
	if cfg.Mask != nil {
		genome.AddMask(cfg.Mask.Start, cfg.Mask.InteractingPolymerases)
	}
	if len(cfg.Weights) > 0 {
		if err := genome.AddWeights(cfg.Weights); err != nil {
			return fmt.Errorf("adding weights: %w", err)
		}
	}

	if err := genome.Initialize(); err != nil {
		return fmt.Errorf("initializing genome: %w", err)
	}

	store, err := tracestore.Open(tracePath)
	if err != nil {
		return fmt.Errorf("opening trace store: %w", err)
	}
	defer store.Close()

	var tick int64
	tickFn := func() int64 { return tick }
	onError := func(err error) { fmt.Fprintf(cmd.ErrOrStderr(), "tracestore: %v\n", err) }

	polymers := []executable{genome}
	store.SubscribeTermination(genome, tickFn, onError)

	genome.OnTranscript(func(t *polymer.Transcript) {
		polymers = append(polymers, t)
		store.SubscribeTermination(t, tickFn, onError)
	})

	// Only genome-level promoters are bound here, at startup. Binding a
	// ribosome to a newly spawned transcript's RBS once it becomes
	// exposed is a reaction-selection decision (bind vs. move) that
	// belongs to the outer scheduler spec.md §1 places out of the core's
	// scope; this command only drives the move/terminate loop.
	for _, spec := range cfg.Polymerases {
		if spec.Promoter == "" {
			continue
		}
		for i := 0; i < spec.CopyNumber; i++ {
			pol := polymer.NewPolymerase(spec.Name, spec.Footprint, spec.Speed)
			if err := genome.Bind(pol, spec.Promoter); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: binding %q copy %d to %q: %v\n", spec.Name, i, spec.Promoter, err)
				continue
			}
		}
	}

	for tick = 0; tick < int64(ticks); tick++ {
		weights := make([]float64, len(polymers))
		total := 0.0
		for i, p := range polymers {
			weights[i] = p.PropSum()
			total += weights[i]
		}
		if total <= 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "simulation quiesced at tick %d\n", tick)
			break
		}

		chosen, err := randutil.ChooseWeighted(polymers, weights)
		if err != nil {
			return fmt.Errorf("choosing polymer to advance at tick %d: %w", tick, err)
		}
		if err := chosen.Execute(); err != nil {
			return fmt.Errorf("tick %d: executing %q: %w", tick, chosen.Name(), err)
		}
		if err := store.FlushSpeciesLog(chosen, tick); err != nil {
			onError(err)
		}
	}

	totalRibos := 0
	for _, n := range tracker.Counts() {
		totalRibos += n
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ran %d ticks, %d ribosomes initiated across tracked genes\n", ticks, totalRibos)
	return nil
}
