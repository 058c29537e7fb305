package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timespiral/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout and artifact cache",
		Long: `Manage the local layout and artifact cache.

Layouts are keyed by dataset content and geometry options; artifacts by
layout content and drawing options. A shared Redis cache (--cache-url) is
not touched by these commands.`,
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// openFileCache opens the default cache directory. It reports ok=false
// without creating anything when the directory does not exist yet.
func openFileCache() (fc *cache.FileCache, ok bool, err error) {
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, false, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	return fc, err == nil, err
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show how many layouts and artifacts are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, ok, err := openFileCache()
			if err != nil {
				return err
			}
			if !ok {
				c.ui.info("Cache is empty")
				return nil
			}
			usage, err := fc.Usage()
			if err != nil {
				return err
			}

			c.ui.title("Cache")
			c.ui.field("Directory", fc.Dir())
			for _, kind := range []string{cache.KeyTypeLayout, cache.KeyTypeArtifact} {
				u := usage[kind]
				c.ui.field(kind+"s", strconv.Itoa(u.Entries)+" ("+humanize.Bytes(uint64(u.Bytes))+")")
			}
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var layoutsOnly, artifactsOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached layouts and artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, ok, err := openFileCache()
			if err != nil {
				return err
			}
			if !ok {
				c.ui.info("Cache is empty")
				return nil
			}

			var kinds []string
			if layoutsOnly {
				kinds = append(kinds, cache.KeyTypeLayout)
			}
			if artifactsOnly {
				kinds = append(kinds, cache.KeyTypeArtifact)
			}
			count, err := fc.Clear(kinds...)
			if err != nil {
				return err
			}

			c.ui.success("Cleared %d cached entries", count)
			c.ui.detail("Directory: %s", fc.Dir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&layoutsOnly, "layouts", false, "only remove cached layouts")
	cmd.Flags().BoolVar(&artifactsOnly, "artifacts", false, "only remove rendered artifacts")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cache.DefaultDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			c.ui.line(dir)
			return nil
		},
	}
}
