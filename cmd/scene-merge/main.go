// Command scene-merge resolves a scene document and all of its imports
// into a single merged YAML document printed to stdout.
package main

import (
	"fmt"
	"os"

	yamlfmt "github.com/itchyny/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/tilecraft/sceneimport"
	"github.com/tilecraft/sceneimport/importer"
)

var (
	flagConcurrency int
	flagLogLevel    string
	flagAssets      bool
	flagNoColor     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "scene-merge <scene.yaml|url|bundle.zip>",
	Short:         "Resolve a scene's imports into one merged document",
	Long:          "scene-merge fetches a scene document and every scene it transitively imports,\ndeep-merges them, rewrites resource URLs to absolute form, and prints the result.",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runMerge,
}

func init() {
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", importer.DefaultOptions().MaxActiveDownloads, "maximum fetches in flight")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", importer.DefaultOptions().LogLevel, "log level: error|warn|info|debug")
	rootCmd.Flags().BoolVar(&flagAssets, "assets", false, "print the registered asset table to stderr")
	rootCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

func runMerge(cmd *cobra.Command, args []string) error {
	opts := importer.DefaultOptions()
	opts.MaxActiveDownloads = flagConcurrency
	opts.LogLevel = flagLogLevel

	platform := sceneimport.NewOSPlatform()
	result, err := importer.Resolve(cmd.Context(), platform, sceneimport.Url(args[0]), opts)
	if err != nil {
		return err
	}

	var doc any
	if err := result.Document.Decode(&doc); err != nil {
		return fmt.Errorf("decode merged document: %w", err)
	}
	out, err := yamlfmt.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode merged document: %w", err)
	}
	os.Stdout.Write(out)

	if flagAssets {
		printAssets(result)
	}
	return nil
}

func useColor() bool {
	if flagNoColor {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func bold(s string) string {
	if !useColor() {
		return s
	}
	return "\x1b[1m" + s + "\x1b[0m"
}

// printAssets writes an aligned table of every registered asset.
func printAssets(result *importer.Result) {
	names := result.Assets.Names()

	nameWidth := runewidth.StringWidth("ASSET")
	for _, name := range names {
		if w := runewidth.StringWidth(name.String()); w > nameWidth {
			nameWidth = w
		}
	}

	fmt.Fprintf(os.Stderr, "%s  %s\n", bold(runewidth.FillRight("ASSET", nameWidth)), bold("BUNDLE ENTRY"))
	for _, name := range names {
		entry := "-"
		if a := result.Assets.Get(name); a != nil && a.Archive() != nil {
			entry = a.Path()
		}
		fmt.Fprintf(os.Stderr, "%s  %s\n", runewidth.FillRight(name.String(), nameWidth), entry)
	}
}
