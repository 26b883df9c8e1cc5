/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/seqard/gqlint/pkg/render"
	"github.com/seqard/gqlint/pkg/settings"
)

var (
	configFilePath string
	outputFormat   render.Format
)

func formatFlag() string {
	return string(render.DefaultFormat(term.IsTerminal(int(os.Stdout.Fd()))))
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlint",
		Short: "Lint GraphQL queries embedded in JavaScript and TypeScript source",
		Long: `gqlint finds GraphQL template literals (gql` + "`...`" + `) inside JavaScript and
TypeScript files, parses each query on its own, and reports problems at the
query's real position in the source file.

Queries that fail to parse (half-typed, or containing ${...} interpolation)
are skipped silently: a broken literal never hides problems in the others.

Checks that need object metadata (field names per entity) read it from a JSON
objects file; without one, those checks simply stay quiet.

Configuration is read from .gqlint.toml in the working directory, including
per-rule suppression. Output can be formatted as annotated source snippets
(default in terminals), plain text (default when piping), or JSON.`,
		Example: `  # Check source files for broken embedded queries
  gqlint check src/app.js src/views/account.tsx

  # Check with object metadata for field-name validation
  gqlint check --objects objects.json src/app.js

  # List the active rules
  gqlint rules

  # JSON output for editor or CI integration
  gqlint check -f json src/app.js | jq '.issues[].rule'`,
	}

	// Persistent flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", settings.DefaultFile, "Path of the gqlint config file")

	var formatStr string
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", formatFlag(), "Output format: json, text, pretty (default: pretty if interactive, text otherwise)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		outputFormat, err = render.ParseFormat(formatStr)
		return err
	}

	// Add all subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewObjectsCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
