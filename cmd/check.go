/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seqard/gqlint/pkg/diagnostic"
	"github.com/seqard/gqlint/pkg/extract"
	"github.com/seqard/gqlint/pkg/metadata"
	"github.com/seqard/gqlint/pkg/rules"
	"github.com/seqard/gqlint/pkg/settings"
	"github.com/seqard/gqlint/pkg/source"
	"github.com/seqard/gqlint/pkg/validate"
)

// ErrIssuesFound is returned when checking produced unsuppressed diagnostics.
// This is a sentinel error that gives CI an exit code of 1; it does not mean
// the command itself failed.
var ErrIssuesFound = errors.New("issues found")

type checkOptions struct {
	objectsPath    string
	namespace      string
	tags           []string
	maxDiagnostics int
}

func NewCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Lint the GraphQL queries embedded in source files",
		Long: `Scans each file for tagged GraphQL template literals, validates every query
found, and reports diagnostics at their position in the file.

Files whose extension is not .js/.jsx/.ts/.tsx (and friends) are skipped with
a note on stderr. Literals that fail to parse are skipped silently.

Exit codes:
  0 - No (unsuppressed) issues
  1 - Issues found, or the command itself failed

Output formats:
  text/pretty  Annotated source snippets
  json         {"issues": [...], "count": n}`,
		Example: `  # Check a couple of files
  gqlint check src/app.js src/account.tsx

  # With object metadata, catching misspelled entity fields
  gqlint check --objects objects.json src/app.js

  # Tighter output budget and a custom template tag
  gqlint check --max-diagnostics 10 --tag gql --tag graphqlQuery src/app.js`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.objectsPath, "objects", "", "JSON file with object metadata (entity -> field -> type)")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Watched namespace for object-field checks (default from config)")
	cmd.Flags().StringArrayVar(&opts.tags, "tag", nil, "Accepted template tag name (can be specified multiple times)")
	cmd.Flags().IntVar(&opts.maxDiagnostics, "max-diagnostics", 0, "Maximum diagnostics reported per file (default from config)")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *checkOptions) error {
	cfg, err := settings.Load(configFilePath)
	if err != nil {
		return err
	}
	if opts.namespace != "" {
		cfg.Namespace = opts.namespace
	}
	if len(opts.tags) > 0 {
		cfg.Tags = opts.tags
	}
	if opts.maxDiagnostics > 0 {
		cfg.MaxDiagnostics = opts.maxDiagnostics
	}

	if cfg.Suppress.All {
		return nil
	}

	meta, cleanup, err := buildMetadataSource(opts.objectsPath, cfg.CacheDir)
	if err != nil {
		return err
	}
	defer cleanup()

	validator := validate.New(rules.Default(meta, cfg.Namespace), extract.New(cfg.Tags...))

	var infos []DiagnosticInfo
	var blocks []string

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read source file: %w", err)
		}
		lang := extract.LanguageForPath(path)
		if lang == "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: not a JavaScript or TypeScript file\n", path)
			continue
		}

		doc := source.NewDocument(path, lang, 0, string(data))
		lines := strings.Split(doc.Text, "\n")

		for _, d := range validator.Validate(cmd.Context(), doc, cfg.MaxDiagnostics) {
			if cfg.Suppressed(d.Rule) {
				continue
			}
			infos = append(infos, diagnosticInfo(path, d))
			blocks = append(blocks, diagnostic.Render(path, lines, d))
		}
	}

	switch outputFormat {
	case "json":
		out, err := json.MarshalIndent(CheckResult{Issues: infos, Count: len(infos)}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		for _, block := range blocks {
			fmt.Fprintln(cmd.OutOrStdout(), block)
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "✓ No issues found")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ Found %s\n", countNoun(len(infos), "issue"))
		}
	}

	if len(infos) > 0 {
		return ErrIssuesFound
	}
	return nil
}

// buildMetadataSource wires the object-metadata collaborator for this run.
// Without an objects file the metadata-backed rules get nil and stay quiet.
// With a cache dir configured, lookups go through the two-tier cache so
// repeated runs skip the (potentially slow) upstream.
func buildMetadataSource(objectsPath, cacheDir string) (metadata.Source, func(), error) {
	noop := func() {}
	if objectsPath == "" {
		return nil, noop, nil
	}

	static, err := metadata.LoadStatic(objectsPath)
	if err != nil {
		return nil, noop, err
	}
	if cacheDir == "" {
		return static, noop, nil
	}

	cache, err := metadata.NewCacheWithDisk(static, cacheDir)
	if err != nil {
		return nil, noop, err
	}
	return cache, func() { cache.Close() }, nil
}

func diagnosticInfo(path string, d source.Diagnostic) DiagnosticInfo {
	return DiagnosticInfo{
		File:      path,
		Severity:  d.Severity.String(),
		Line:      d.Range.Start.Line + 1,
		Column:    d.Range.Start.Column + 1,
		EndLine:   d.Range.End.Line + 1,
		EndColumn: d.Range.End.Column + 1,
		Message:   d.Message,
		Rule:      d.Rule,
	}
}
