package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shiftscan/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the shiftscan result cache",
	Long:  "Remove cached batch results stored under the user cache directory.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().Bool("dry-run", false, "print what would be removed without removing it")
	cleanCmd.Flags().Bool("verbose", false, "list cached entries before removing them")
}

func runClean(cmd *cobra.Command, _ []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}

	dir, err := driver.CacheDir("shiftscan")
	if err != nil {
		return fmt.Errorf("failed to locate cache directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(os.Stdout, "cache directory not found\n")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}

	if verbose {
		entries, err := filepath.Glob(filepath.Join(dir, "runs", "*.mp"))
		if err == nil {
			for _, entry := range entries {
				_, _ = fmt.Fprintf(os.Stdout, "  %s\n", filepath.Base(entry))
			}
			_, _ = fmt.Fprintf(os.Stdout, "%d cached runs in %s\n", len(entries), dir)
		}
	}
	if dryRun {
		_, _ = fmt.Fprintf(os.Stdout, "would remove %s\n", dir)
		return nil
	}

	cache, err := driver.OpenDiskCacheAt(dir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	return nil
}
