// Package main provides the tablelinker command line interface.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/cli"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/logger"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/task"
	"github.com/NII-CPS-Center/tablelinker-lib/pkg/tablelinker"
)

// Exit codes
const (
	ExitSuccess         = 0
	ExitValidationError = 1
	ExitParseError      = 2
	ExitRuntimeError    = 3
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Convert command flags
	outputPath string
	mergePath  string

	// Mapping command flags
	threshold int

	// Build information (set via ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitRuntimeError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tablelinker",
	Short: "Tablelinker - CSV table cleaning and transformation",
	Long: `Tablelinker applies convertor tasks to CSV tables.

A task file (JSON or YAML) names a convertor and its parameters; convert
runs a chain of task files over a CSV input. Character encoding, delimiter
and leading comment lines are normalized automatically on read.

Examples:
  # Apply a task file and print the result
  tablelinker convert data.csv tasks.json

  # Apply two task files and write to a file
  tablelinker convert -o out.csv data.csv clean.yaml reshape.yaml

  # Align columns against a template table
  tablelinker mapping data.csv template.csv`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Configure logger level based on flags
		if verbose {
			logger.SetLevel(slog.LevelDebug)
		} else if quiet {
			logger.SetLevel(slog.LevelError)
		}
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <input-csv> <task-file>...",
	Short: "Apply task files to a CSV table",
	Long: `Apply one or more task files to a CSV table, in order.

Each task file holds a single task object or an array of tasks. Files are
validated against the task schema before anything runs. The result is
written to stdout, or to a file with --output, or appended to an existing
table with --merge.

Exit codes:
  0 - Conversion succeeded
  1 - Validation errors (schema violations, unknown convertors)
  2 - Parse errors (invalid JSON/YAML syntax)
  3 - Runtime errors (conversion failures)

Examples:
  tablelinker convert data.csv tasks.json
  tablelinker convert -o cleaned.csv data.csv tasks.yaml
  tablelinker convert --merge master.csv data.csv tasks.json`,
	Args: cobra.MinimumNArgs(2),
	Run:  runConvert,
}

var validateCmd = &cobra.Command{
	Use:   "validate <task-file>...",
	Short: "Validate task files",
	Long: `Validate task files against the task schema without running them.

Supports both JSON and YAML formats. The format is auto-detected based on
file extension (.json, .yaml, .yml) or content.

Exit codes:
  0 - All task files are valid
  1 - Validation errors (schema violations, unknown convertors)
  2 - Parse errors (invalid JSON/YAML syntax)

Examples:
  tablelinker validate tasks.json
  tablelinker validate clean.yaml reshape.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

var mappingCmd = &cobra.Command{
	Use:   "mapping <input-csv> <template-csv>",
	Short: "Map input columns onto a template table's columns",
	Long: `Compute the best assignment of input columns to template columns.

The result is a JSON object in template column order, mapping each template
column to the matching input column, or to null when no input column is
similar enough. The object is directly usable as the column_map parameter
of the mapping_cols convertor.

Examples:
  tablelinker mapping data.csv template.csv
  tablelinker mapping --threshold 40 data.csv template.csv`,
	Args: cobra.ExactArgs(2),
	Run:  runMapping,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered convertors",
	Long:  "List all registered convertor keys. Verbose output includes names and descriptions.",
	Run:   runList,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version, commit hash, and build date information.",
	Run:   runVersion,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")

	// Convert command flags
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the result to a file instead of stdout")
	convertCmd.Flags().StringVar(&mergePath, "merge", "", "Append the result to an existing CSV file, reordered to its columns")
	convertCmd.MarkFlagsMutuallyExclusive("output", "merge")

	// Mapping command flags
	mappingCmd.Flags().IntVarP(&threshold, "threshold", "t", tablelinker.DefaultMappingThreshold,
		"Similarity percentage below which a template column stays unassigned")

	// Add commands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// checkTaskFiles parses and validates task files, exiting with the parse or
// validation exit code on the first bad file.
func checkTaskFiles(paths []string) {
	for _, path := range paths {
		data, err := task.ParseFile(path)
		if err != nil {
			var perr *task.ParseError
			if errors.As(err, &perr) {
				cli.PrintParseError(perr, verbose)
			} else {
				fmt.Fprintf(os.Stderr, "✗ %v\n", err)
			}
			os.Exit(ExitParseError)
		}
		if verrs := task.ValidateData(data); len(verrs) > 0 {
			cli.PrintValidationErrors(path, verrs, quiet)
			os.Exit(ExitValidationError)
		}
	}
}

// loadTasks builds the task list from already-validated files. Remaining
// failures are semantic, such as unknown convertor keys.
func loadTasks(paths []string) []*tablelinker.Task {
	tasks, err := tablelinker.TasksFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(ExitValidationError)
	}
	return tasks
}

func runConvert(_ *cobra.Command, args []string) {
	inputPath := args[0]
	taskPaths := args[1:]

	checkTaskFiles(taskPaths)
	tasks := loadTasks(taskPaths)

	if !quiet && verbose {
		fmt.Fprintf(os.Stderr, "Applying %d task(s) to %s\n", len(tasks), inputPath)
	}

	result, err := tablelinker.New(inputPath).Apply(tasks...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Conversion failed: %v\n", err)
		os.Exit(ExitRuntimeError)
	}
	defer result.Cleanup()

	switch {
	case mergePath != "":
		err = result.Merge(mergePath)
	case outputPath != "":
		err = result.Save(outputPath)
	default:
		err = result.Write(os.Stdout, -1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Writing result failed: %v\n", err)
		os.Exit(ExitRuntimeError)
	}

	if !quiet && outputPath != "" {
		fmt.Fprintf(os.Stderr, "✓ Result written to %s\n", outputPath)
	}
	if !quiet && mergePath != "" {
		fmt.Fprintf(os.Stderr, "✓ Result merged into %s\n", mergePath)
	}
	os.Exit(ExitSuccess)
}

func runValidate(_ *cobra.Command, args []string) {
	checkTaskFiles(args)
	tasks := loadTasks(args)

	if !quiet {
		fmt.Printf("✓ %d task(s) valid\n", len(tasks))
		if verbose {
			for _, t := range tasks {
				fmt.Printf("  %s\n", t.String())
			}
		}
	}
	os.Exit(ExitSuccess)
}

func runMapping(_ *cobra.Command, args []string) {
	inputPath, templatePath := args[0], args[1]

	entries, err := tablelinker.New(inputPath).Mapping(tablelinker.New(templatePath), threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Mapping failed: %v\n", err)
		os.Exit(ExitRuntimeError)
	}
	if err := cli.PrintMapping(os.Stdout, entries); err != nil {
		fmt.Fprintf(os.Stderr, "✗ Writing mapping failed: %v\n", err)
		os.Exit(ExitRuntimeError)
	}
	os.Exit(ExitSuccess)
}

func runList(_ *cobra.Command, _ []string) {
	infos := tablelinker.ConvertorInfos()
	rows := make([]cli.ConvertorRow, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, cli.ConvertorRow{
			Key:         info.Key,
			Name:        info.Name,
			Description: info.Description,
		})
	}
	cli.PrintConvertors(os.Stdout, rows, cli.OutputOptions{Verbose: verbose, Quiet: quiet})
}

func runVersion(_ *cobra.Command, _ []string) {
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Build Date: %s\n", buildDate)
}
