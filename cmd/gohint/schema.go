package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/gohint/jsonschema"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		flags hintFlags
		title string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a hint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hint, desc, err := flags.resolve()
			if err != nil {
				return err
			}
			if title == "" {
				title = desc
			}
			doc, err := jsonschema.Document(hint, title)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "schema title (default: the hint or entry name)")
	return cmd
}
