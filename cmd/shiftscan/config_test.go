package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shiftscan/internal/csp"
)

func writeManifest(t *testing.T, data string) string {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "shiftscan.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write shiftscan.toml: %v", err)
	}
	return path
}

func TestLoadProjectConfigDefaults(t *testing.T) {
	path := writeManifest(t, `# test manifest
[project]
name = "demo"
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Project.Name != "demo" {
		t.Fatalf("Project.Name = %q, want demo", cfg.Project.Name)
	}
	if cfg.Output.Results != "nmr_results.txt" {
		t.Fatalf("Output.Results = %q, want nmr_results.txt", cfg.Output.Results)
	}
	if cfg.Output.Format != "pretty" {
		t.Fatalf("Output.Format = %q, want pretty", cfg.Output.Format)
	}
	if cfg.Csp.AliphaticCarbonWeight != 0.34 {
		t.Fatalf("AliphaticCarbonWeight = %v, want 0.34", cfg.Csp.AliphaticCarbonWeight)
	}
	if cfg.Csp.AromaticCarbonWeight != 0.07 {
		t.Fatalf("AromaticCarbonWeight = %v, want 0.07", cfg.Csp.AromaticCarbonWeight)
	}
	if cfg.Batch.Jobs != 0 {
		t.Fatalf("Batch.Jobs = %d, want 0", cfg.Batch.Jobs)
	}
}

func TestLoadProjectConfigOverrides(t *testing.T) {
	path := writeManifest(t, `[project]
name = "titration-2026"

[output]
results = "out/results.txt"
format = "tsv"

[csp]
aliphatic_carbon_weight = 0.25
aromatic_carbon_weight = 0.10

[batch]
jobs = 4
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Output.Results != "out/results.txt" {
		t.Fatalf("Output.Results = %q", cfg.Output.Results)
	}
	if cfg.Output.Format != "tsv" {
		t.Fatalf("Output.Format = %q, want tsv", cfg.Output.Format)
	}
	if cfg.Csp.AliphaticCarbonWeight != 0.25 || cfg.Csp.AromaticCarbonWeight != 0.10 {
		t.Fatalf("csp weights = %v / %v", cfg.Csp.AliphaticCarbonWeight, cfg.Csp.AromaticCarbonWeight)
	}
	if cfg.Batch.Jobs != 4 {
		t.Fatalf("Batch.Jobs = %d, want 4", cfg.Batch.Jobs)
	}
}

func TestLoadProjectConfigRejects(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantSub string
	}{
		{
			name:    "unknown key",
			data:    "[project]\nname = \"demo\"\ncolour = \"on\"\n",
			wantSub: "unknown key",
		},
		{
			name:    "missing project name",
			data:    "[output]\nformat = \"tsv\"\n",
			wantSub: "missing [project]",
		},
		{
			name:    "bad format",
			data:    "[project]\nname = \"demo\"\n\n[output]\nformat = \"yaml\"\n",
			wantSub: "[output].format",
		},
		{
			name:    "nonpositive weight",
			data:    "[project]\nname = \"demo\"\n\n[csp]\naliphatic_carbon_weight = 0.0\n",
			wantSub: "aliphatic_carbon_weight",
		},
	}
	for _, tc := range cases {
		path := writeManifest(t, tc.data)
		_, err := loadProjectConfig(path)
		if err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantSub) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.wantSub)
		}
	}
}

func TestManifestResultsPath(t *testing.T) {
	var nilManifest *projectManifest
	if got := nilManifest.resultsPath(); got != "nmr_results.txt" {
		t.Fatalf("nil manifest resultsPath = %q", got)
	}

	m := &projectManifest{
		Root: filepath.FromSlash("/proj"),
		Config: projectConfig{
			Output: outputSection{Results: "out/results.txt"},
		},
	}
	want := filepath.Join(m.Root, "out", "results.txt")
	if got := m.resultsPath(); got != want {
		t.Fatalf("resultsPath = %q, want %q", got, want)
	}
}

func TestManifestWeightsFor(t *testing.T) {
	m := &projectManifest{
		Config: projectConfig{
			Csp: cspSection{
				AliphaticCarbonWeight: 0.25,
				AromaticCarbonWeight:  0.05,
			},
		},
	}
	w, err := m.weightsFor(csp.RegionAromatic)
	if err != nil {
		t.Fatalf("weightsFor: %v", err)
	}
	if w.H != 1.0 || w.C != 0.05 {
		t.Fatalf("weights = %+v", w)
	}

	var nilManifest *projectManifest
	w, err = nilManifest.weightsFor(csp.RegionAliphatic)
	if err != nil {
		t.Fatalf("weightsFor nil manifest: %v", err)
	}
	if w.C != 0.34 {
		t.Fatalf("nil manifest aliphatic C weight = %v, want 0.34", w.C)
	}
}
