/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqard/gqlint/pkg/render"
	"github.com/seqard/gqlint/pkg/rules"
	"github.com/seqard/gqlint/pkg/settings"
)

func formatRuleText(rule RuleInfo) string {
	return fmt.Sprintf("%s: %s", rule.ID, rule.Description)
}

func formatRulesPretty(list []RuleInfo) string {
	t := makeTable()
	for _, rule := range list {
		t.Row(rule.ID, rule.Description)
	}
	t.Headers("rule", "description")
	return t.String()
}

func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active lint rules",
		Long: `Lists every rule in the registry, in the order they run.

Rule IDs are what the suppress list in .gqlint.toml refers to.`,
		Example: `  # See what gqlint checks
  gqlint rules

  # Pipe rule IDs to other tools
  gqlint rules -f json | jq -r '.[].id'`,
		RunE: runRules,
	}

	return cmd
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := settings.Load(configFilePath)
	if err != nil {
		return err
	}

	var list []RuleInfo
	for _, rule := range rules.Default(nil, cfg.Namespace).Rules() {
		list = append(list, RuleInfo{ID: rule.ID(), Description: rule.Description()})
	}

	renderer := render.Renderer[RuleInfo]{
		Data:         list,
		TextFormat:   formatRuleText,
		PrettyFormat: formatRulesPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
