package app

import (
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/evanrichards/tree-sorter-imports/internal/rules"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Rule", "Nodes", "Messages", "Description"})
			table.SetBorder(false)
			table.SetCenterSeparator("")
			table.SetAutoWrapText(false)

			for _, rule := range rules.All() {
				kinds := make([]string, 0, len(rule.Kinds()))
				for _, k := range rule.Kinds() {
					kinds = append(kinds, k.String())
				}

				ids := make([]string, 0, len(rule.Messages()))
				for id := range rule.Messages() {
					ids = append(ids, id)
				}
				sort.Strings(ids)

				table.Append([]string{rule.ID(), strings.Join(kinds, ", "), strings.Join(ids, ", "), rule.Description()})
			}

			table.Render()
			return nil
		},
	}
}
