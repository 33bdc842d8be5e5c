package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/lazykit/kit/config"
	"github.com/ZanzyTHEbar/lazykit/kit/crawler"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [dir]",
	Short: "Crawl a project directory and print its annotated tree",
	Long: `Walks the directory (default ".") and prints one node per file and directory.
Files carry the @kit annotations found in their content as metadata.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCrawl,
}

func init() {
	flags := crawlCmd.Flags()
	flags.StringP("format", "f", "", "Output format: json, yaml or tree")
	flags.Bool("snapshot", false, "Print the full snapshot (id, timing, stats) instead of only the tree")
	flags.Bool("follow-symlinks", true, "Follow symbolic links")
	flags.Bool("hidden", true, "Include dot files and directories")
	flags.Bool("attributes", false, "Add size, mode and type attributes to file metadata")
	flags.String("ignore-file", "", "Name of the gitignore style file read from the crawl root")
	flags.StringSlice("ignore", nil, "Additional gitignore style patterns")
	flags.Int64("max-file-size", 0, "Skip reading files larger than this many bytes (0 keeps the configured limit)")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	applyCrawlFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	snap, err := crawler.New(cfg.Crawl.Options(logger)...).Snapshot(dir)
	if err != nil {
		return err
	}

	if cfg.Output.Snapshot {
		if cfg.Output.Format == "tree" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s  %s  %d dirs, %d files, %d failures\n",
				snap.ID, snap.Root, snap.Stats.Directories, snap.Stats.Files, snap.Stats.TotalFailures())
			return render(cmd.OutOrStdout(), cfg.Output.Format, snap.Tree)
		}
		return render(cmd.OutOrStdout(), cfg.Output.Format, snap)
	}
	return render(cmd.OutOrStdout(), cfg.Output.Format, snap.Tree)
}

// applyCrawlFlags overrides config values with flags given on the command
// line.
func applyCrawlFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("snapshot") {
		cfg.Output.Snapshot, _ = flags.GetBool("snapshot")
	}
	if flags.Changed("follow-symlinks") {
		cfg.Crawl.FollowSymlinks, _ = flags.GetBool("follow-symlinks")
	}
	if flags.Changed("hidden") {
		cfg.Crawl.IncludeHidden, _ = flags.GetBool("hidden")
	}
	if flags.Changed("attributes") {
		cfg.Crawl.Attributes, _ = flags.GetBool("attributes")
	}
	if flags.Changed("ignore-file") {
		cfg.Crawl.IgnoreFile, _ = flags.GetString("ignore-file")
	}
	if flags.Changed("ignore") {
		patterns, _ := flags.GetStringSlice("ignore")
		cfg.Crawl.Ignore = append(cfg.Crawl.Ignore, patterns...)
	}
	if flags.Changed("max-file-size") {
		if limit, _ := flags.GetInt64("max-file-size"); limit > 0 {
			cfg.Crawl.MaxFileSize = limit
		}
	}
}

// render writes v in the requested format. The tree format requires v to
// implement fmt.Stringer.
func render(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "tree":
		s, ok := v.(fmt.Stringer)
		if !ok {
			return fmt.Errorf("tree output is not available for %T", v)
		}
		_, err := io.WriteString(w, s.String())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
