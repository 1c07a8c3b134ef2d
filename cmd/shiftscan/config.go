package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"shiftscan/internal/csp"
	"shiftscan/internal/project"
	"shiftscan/internal/report"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project projectSection `toml:"project"`
	Output  outputSection  `toml:"output"`
	Csp     cspSection     `toml:"csp"`
	Batch   batchSection   `toml:"batch"`
}

type projectSection struct {
	Name string `toml:"name"`
}

type outputSection struct {
	Results string `toml:"results"`
	Format  string `toml:"format"`
}

type cspSection struct {
	AliphaticCarbonWeight float64 `toml:"aliphatic_carbon_weight"`
	AromaticCarbonWeight  float64 `toml:"aromatic_carbon_weight"`
}

type batchSection struct {
	Jobs int `toml:"jobs"`
}

func defaultProjectConfig() projectConfig {
	return projectConfig{
		Output: outputSection{
			Results: report.DefaultResultsFile,
			Format:  "pretty",
		},
		Csp: cspSection{
			AliphaticCarbonWeight: 0.34,
			AromaticCarbonWeight:  0.07,
		},
	}
}

// loadProjectManifest walks up from startDir looking for shiftscan.toml.
// A missing manifest is not an error: every command falls back to defaults.
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := project.FindShiftscanToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	cfg := defaultProjectConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("project") {
		return projectConfig{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if cfg.Csp.AliphaticCarbonWeight <= 0 {
		return projectConfig{}, fmt.Errorf("%s: [csp].aliphatic_carbon_weight must be positive", path)
	}
	if cfg.Csp.AromaticCarbonWeight <= 0 {
		return projectConfig{}, fmt.Errorf("%s: [csp].aromatic_carbon_weight must be positive", path)
	}
	switch cfg.Output.Format {
	case "pretty", "tsv", "json":
	default:
		return projectConfig{}, fmt.Errorf("%s: [output].format must be pretty, tsv, or json", path)
	}
	return cfg, nil
}

// resultsPath returns the configured results file. Nil-safe.
func (m *projectManifest) resultsPath() string {
	if m == nil {
		return report.DefaultResultsFile
	}
	if strings.TrimSpace(m.Config.Output.Results) == "" {
		return report.DefaultResultsFile
	}
	// Относительные пути привязаны к корню проекта.
	p := m.Config.Output.Results
	if !filepath.IsAbs(p) {
		p = filepath.Join(m.Root, p)
	}
	return p
}

// weightsFor returns the carbon weighting for the given region, honoring
// manifest overrides. Nil-safe.
func (m *projectManifest) weightsFor(region csp.Region) (csp.Weights, error) {
	if m == nil {
		return csp.DefaultWeights(region)
	}
	switch region {
	case csp.RegionAliphatic:
		return csp.Weights{H: 1.0, C: m.Config.Csp.AliphaticCarbonWeight}, nil
	case csp.RegionAromatic:
		return csp.Weights{H: 1.0, C: m.Config.Csp.AromaticCarbonWeight}, nil
	default:
		return csp.DefaultWeights(region)
	}
}

// defaultJobs returns the configured worker count for batch runs. Nil-safe.
func (m *projectManifest) defaultJobs() int {
	if m == nil {
		return 0
	}
	return m.Config.Batch.Jobs
}

// defaultFormat returns the configured console output format. Nil-safe.
func (m *projectManifest) defaultFormat() string {
	if m == nil {
		return "pretty"
	}
	return m.Config.Output.Format
}
