package cli

import (
	"context"
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mvidal/strata/pkg/layers"
	"github.com/mvidal/strata/pkg/pipeline"
	"github.com/mvidal/strata/pkg/render"
)

type classifyOptions struct {
	name    string
	output  string
	stats   bool
	plain   bool
	noCache bool
}

func newClassifyCmd() *cobra.Command {
	opts := &classifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify <source>",
		Short: "Group the entities of a relation source into layers",
		Long: `Classify parses a relation source (.erd, .toml, or .json), computes the
longest-path distance between every pair of entities, and prints the
resulting layer grouping. Results are cached locally; identical inputs
return instantly on subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "override the relation-set name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the layering JSON to a file instead of printing it")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print engine statistics")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print layers as unstyled text (for piping)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the local result cache")

	return cmd
}

func runClassify(ctx context.Context, input string, opts *classifyOptions) error {
	logger := loggerFromContext(ctx)
	verbose := logger.GetLevel() <= charmlog.DebugLevel

	c := openCache(logger, opts.noCache)
	defer c.Close()
	runner := pipeline.NewRunner(c, logger)

	pipeOpts := pipeline.Options{Input: input, Name: opts.name}
	if verbose {
		pipeOpts.Observer = logObserver{logger: logger}
	}

	// The spinner and debug logs fight over stderr, so verbose runs get a
	// timed log line instead.
	var spinner *Spinner
	if !verbose {
		spinner = newSpinner(ctx, "classifying "+input)
		spinner.Start()
	}
	p := newProgress(logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	if verbose {
		p.done("classification complete")
	}

	if len(result.Isolated) > 0 {
		printWarning("not layered (no relations): %s", strings.Join(result.Isolated, ", "))
	}

	switch {
	case opts.output != "":
		if err := layers.WriteLayeringFile(opts.output, result.Layering); err != nil {
			return err
		}
		printSuccess("classified %q into %d layers", result.Set.Name, len(result.Layering.Layers))
		printFile(opts.output)
	case opts.plain:
		fmt.Print(render.Table(result.Layering))
	default:
		printLayering(result.Set.Name, result.Layering)
	}

	if opts.stats {
		printStats(result.Layering.Stats, len(result.Layering.Layers))
	}
	return nil
}
