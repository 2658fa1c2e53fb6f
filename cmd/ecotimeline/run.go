package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SbEnChOi/world-energy-ubiquity/internal/config"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/aggregate"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/export"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/validation"
)

// runEnv is the resolved configuration for one command: file and
// environment first, flags on top.
type runEnv struct {
	cfg      *config.AppConfig
	table    seed.Table
	resource seed.Resource
	year     int
}

func loadEnv(f *flags) (*runEnv, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if f.seedsPath != "" {
		cfg.Projection.SeedsPath = f.seedsPath
	}
	if f.seed != 0 {
		cfg.Projection.Seed = f.seed
	}
	if f.resource != "" {
		cfg.Projection.Resource = f.resource
	}
	if f.year != 0 {
		cfg.Projection.Year = f.year
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := seed.LoadOrDefault(cfg.Projection.SeedsPath)
	if err != nil {
		return nil, fmt.Errorf("loading seeds: %w", err)
	}
	return &runEnv{
		cfg:      cfg,
		table:    table,
		resource: cfg.DefaultResource(),
		year:     cfg.Projection.Year,
	}, nil
}

// loadAndValidate resolves the run and refuses tables with schema errors.
func loadAndValidate(f *flags) (*runEnv, error) {
	env, err := loadEnv(f)
	if err != nil {
		return nil, err
	}
	report := validation.ValidateTable(env.table)
	if err := report.Err(); err != nil {
		printValidationReport(report)
		return nil, fmt.Errorf("seed table: %w", err)
	}
	return env, nil
}

// generate runs the engine and reports the seed on stderr so runs can be
// reproduced with --seed.
func (e *runEnv) generate() *timeline.WorldSnapshot {
	rng, used := timeline.NewSeededRNG(e.cfg.Projection.Seed)
	fmt.Fprintf(os.Stderr, "resource %s, seed %d\n", e.resource, used)
	return timeline.Generate(e.table, e.resource, rng)
}

func runProject(f *flags, asJSON bool) error {
	env, err := loadAndValidate(f)
	if err != nil {
		return err
	}
	snap := env.generate()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	printSnapshot(snap, env.year, env.cfg.Projection.CriticalThreshold)
	fmt.Println()
	printSummary(aggregate.Summarize(snap, env.year, env.cfg.Projection.CriticalThreshold))
	return nil
}

func runSeries(f *flags) error {
	env, err := loadAndValidate(f)
	if err != nil {
		return err
	}
	snap := env.generate()
	series := aggregate.ComputeGlobalSeries(snap)

	printSeries(series, snap.Resource.Unit())
	fmt.Println()
	if y, ok := aggregate.GlobalDepletionYear(series); ok {
		fmt.Printf("Global depletion year: %d\n", y)
	} else {
		fmt.Printf("Global depletion year: none before %d\n", snap.Range.End)
	}
	return nil
}

func runValidate(f *flags) error {
	env, err := loadEnv(f)
	if err != nil {
		return err
	}

	report := validation.ValidateTable(env.table)
	if report.Valid {
		report.Merge(validation.ValidateSnapshot(env.generate()))
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runExport(f *flags, out string) error {
	env, err := loadAndValidate(f)
	if err != nil {
		return err
	}
	snap := env.generate()

	if out == "" {
		out = fmt.Sprintf("ecotimeline-%s-%d.xlsx", snap.Resource, env.year)
	}
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := export.WriteWorkbook(file, snap, env.year, env.cfg.Projection.CriticalThreshold); err != nil {
		file.Close()
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

func runConfigInit(f *flags, path string, force bool) error {
	env, err := loadEnv(f)
	if err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Save(path, env.cfg); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
