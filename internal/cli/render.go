package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvidal/strata/pkg/pipeline"
)

type renderOptions struct {
	name    string
	output  string
	formats []string
	noCache bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Export the layered graph as DOT, SVG, or PNG",
		Long: `Render classifies a relation source and writes the layered graph in the
requested formats. Each layer becomes a same-rank row; edges follow the
ingested relations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "override the relation-set name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path base (defaults to the source file stem)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{pipeline.FormatDOT}, "output formats: dot, svg, png, json")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the local result cache")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOptions) error {
	logger := loggerFromContext(ctx)

	c := openCache(logger, opts.noCache)
	defer c.Close()
	runner := pipeline.NewRunner(c, logger)

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:   input,
		Name:    opts.name,
		Formats: opts.formats,
	})
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	printSuccess("rendered %q (%d layers)", result.Set.Name, len(result.Layering.Layers))
	for _, format := range opts.formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
