package cli

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvidal/strata/pkg/cache"
)

// defaultCacheDir returns the per-user cache directory for classification
// results, honoring the STRATA_CACHE_DIR override.
func defaultCacheDir() (string, error) {
	if dir := os.Getenv("STRATA_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "strata"), nil
}

// openCache opens the file cache used by CLI runs. Cache failures are not
// fatal; the run proceeds uncached with a warning.
func openCache(logger *log.Logger, disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := defaultCacheDir()
	if err == nil {
		var c cache.Cache
		if c, err = cache.NewFileCache(dir); err == nil {
			return c
		}
	}
	logger.Warn("cache unavailable, continuing without", "err", err)
	return cache.NewNullCache()
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local classification cache",
	}
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached classification results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := defaultCacheDir()
			if err != nil {
				return err
			}
			c, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Clear(); err != nil {
				return err
			}
			printSuccess("cache cleared")
			printFile(dir)
			return nil
		},
	}
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := defaultCacheDir()
			if err != nil {
				return err
			}
			cmd.Println(dir)
			return nil
		},
	}
}
