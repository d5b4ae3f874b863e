package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"loom/compiler-go/pkg/driver"
)

const toolVersion = "loomcheck 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("loomcheck", flag.ContinueOnError)
	projectDir := fs.String("C", ".", "project directory containing loom.yaml")
	verbose := fs.Bool("v", false, "enable debug logging")
	warningsAsErrors := fs.Bool("werror", false, "treat warnings as errors")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintln(os.Stdout, toolVersion)
		return 0
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	program, err := driver.NewLoader(*projectDir).Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load project")
		return 1
	}
	logger.Debug().
		Str("project", program.Manifest.Name).
		Int("modules", len(program.Modules)).
		Msg("project loaded")

	opts := program.Manifest.Options
	if *warningsAsErrors {
		opts.WarningsAsErrors = true
	}

	results := make([]*driver.Result, len(program.Modules))
	var g errgroup.Group
	for i, module := range program.Modules {
		i, module := i, module
		g.Go(func() error {
			result, err := driver.AnalyzeModule(module)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		return 1
	}

	failed := false
	for _, result := range results {
		for _, d := range result.Diagnostics {
			fmt.Fprintln(os.Stdout, driver.Describe(result.Module.Path, d))
		}
		if result.Failed(opts) {
			failed = true
		}
	}

	errors, warnings := driver.Summarize(results)
	logger.Info().
		Int("errors", errors).
		Int("warnings", warnings).
		Msg("analysis complete")
	if failed {
		return 1
	}
	return 0
}
