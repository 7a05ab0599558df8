// Command weaver drives the compile-time dependency-injection pipeline
// over a set of host-language source files: lex, parse, inspect,
// generate.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rjchrhl/weaver/internal/wconfig"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var prefix string
	var templateDir string
	var dryRun bool
	var showDiff bool

	rootCmd := &cobra.Command{
		Use:   "weaver",
		Short: "Compile-time dependency-injection code generator",
		Long:  "Scans host source files for dependency annotations, validates the object graph, and emits wiring code.",
	}

	compileCmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Generate wiring code for the given source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wconfig.LoadEnv(wconfig.Default())
			if prefix != "" {
				cfg.AnnotationPrefix = prefix
			}
			if templateDir != "" {
				cfg.TemplateDir = templateDir
			}
			cfg.DryRun = dryRun
			return runPipeline(args, cfg, showDiff)
		},
	}
	compileCmd.Flags().StringVar(&prefix, "prefix", "", "annotation family identifier (default \"Weaver\")")
	compileCmd.Flags().StringVar(&templateDir, "templates", "", "template bundle directory")
	compileCmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff for every changed file")
	compileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "generate and diff without writing")

	checkCmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate and diff without writing generated files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wconfig.LoadEnv(wconfig.Default())
			if prefix != "" {
				cfg.AnnotationPrefix = prefix
			}
			if templateDir != "" {
				cfg.TemplateDir = templateDir
			}
			cfg.DryRun = true
			return runPipeline(args, cfg, true)
		},
	}
	checkCmd.Flags().StringVar(&prefix, "prefix", "", "annotation family identifier (default \"Weaver\")")
	checkCmd.Flags().StringVar(&templateDir, "templates", "", "template bundle directory")

	rootCmd.AddCommand(compileCmd, checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(exitCodeFor(err))
	}
}
