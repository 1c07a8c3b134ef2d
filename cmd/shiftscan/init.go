package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new shiftscan project",
	Long: `Initialize a new shiftscan project by creating a project manifest
(shiftscan.toml) and an example titration peak list (titration.txt). If
[path|name] is omitted, initializes the current directory. If a non-existing
name is provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit initializes a shiftscan project at the specified target path (or the
// current working directory when no argument or "." is provided) by creating a
// shiftscan.toml manifest and an example titration.txt peak list.
//
// It resolves the target path, creates the directory if it does not exist,
// derives a project name from the directory basename (falling back to
// "shiftscan-project" for invalid names), and refuses to initialize if
// shiftscan.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "shiftscan-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "shiftscan.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Create titration.txt if not exists
	examplePath := filepath.Join(target, "titration.txt")
	createdExample := false
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(defaultTitrationTxt()), 0o600); err != nil {
			return fmt.Errorf("failed to write titration.txt: %w", err)
		}
		createdExample = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized shiftscan project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - shiftscan.toml\n")
	if createdExample {
		fmt.Fprintf(os.Stdout, "  - titration.txt\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - titration.txt (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns the starter TOML manifest for a shiftscan
// project using the provided project name. Every section carries its default
// so the schema is visible without reading docs.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# Shiftscan project manifest
[project]
name = "%s"

[output]
results = "nmr_results.txt"
format = "pretty"

[csp]
aliphatic_carbon_weight = 0.34
aromatic_carbon_weight = 0.07

[batch]
jobs = 0
`, name)
}

// defaultTitrationTxt returns the example titration peak list written by init.
func defaultTitrationTxt() string {
	return `# Example titration peak list.
# Columns: id  H(free)  C(free)  H(bound)  C(bound), shifts in ppm.
# Blank lines and lines starting with # are skipped.
A45  7.04  131.2  7.09  131.5
T33  1.20   20.0  1.22   20.4
G12  3.95   45.1  3.95   45.1
`
}
