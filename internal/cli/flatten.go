package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/zoobzio/damper/flatten"
)

func newFlattenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatten <file>",
		Short: "Flatten a nested YAML or JSON document into prefixed keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.flatten(cmd, args[0])
		},
	}

	cmd.Flags().String("prefix", "", "prefix for every key")
	cmd.Flags().String("separator", flatten.DefaultSeparator, "string placed between key segments")
	_ = a.v.BindPFlag("prefix", cmd.Flags().Lookup("prefix"))
	_ = a.v.BindPFlag("separator", cmd.Flags().Lookup("separator"))
	return cmd
}

func (a *app) flatten(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	obj, err := flatten.Decode(data)
	if err != nil {
		return err
	}

	flat := flatten.Flatten(obj, a.v.GetString("prefix"), flatten.WithSeparator(a.v.GetString("separator")))

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Key", "Value"})
	for _, k := range slices.Sorted(maps.Keys(flat)) {
		t.AppendRow(table.Row{k, flat[k]})
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}
