/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seqard/gqlint/pkg/metadata"
	"github.com/seqard/gqlint/pkg/render"
)

func formatObjectFieldText(f ObjectFieldInfo) string {
	return fmt.Sprintf("%s.%s: %s", f.Object, f.Field, f.Type)
}

func formatObjectFieldsPretty(fields []ObjectFieldInfo) string {
	t := makeTable()
	for _, f := range fields {
		t.Row(f.Object, f.Field, f.Type)
	}
	t.Headers("object", "field", "type")
	return t.String()
}

func NewObjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objects <objects-file>",
		Short: "List the entities and fields in an object-metadata file",
		Long: `Reads a JSON objects file (the same one "check --objects" uses) and lists
every entity field it knows about. Useful to confirm what the
known-object-fields rule will accept.`,
		Example: `  # See the metadata check's view of the world
  gqlint objects objects.json

  # Only the entity names
  gqlint objects objects.json -f json | jq -r '.[].object' | sort -u`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runObjects,
	}

	return cmd
}

func runObjects(cmd *cobra.Command, args []string) error {
	src, err := metadata.LoadStatic(args[0])
	if err != nil {
		return err
	}

	var fields []ObjectFieldInfo
	for _, name := range src.ObjectNames() {
		info, err := src.GetObjectInfo(context.Background(), name)
		if err != nil || info == nil {
			continue
		}
		for _, field := range info.FieldNames() {
			fields = append(fields, ObjectFieldInfo{
				Object: name,
				Field:  field,
				Type:   info.Fields[field],
			})
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No objects found in the metadata file.")
	}

	renderer := render.Renderer[ObjectFieldInfo]{
		Data:         fields,
		TextFormat:   formatObjectFieldText,
		PrettyFormat: formatObjectFieldsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
