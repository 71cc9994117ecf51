package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/sandeepkv93/dayplanner/internal/advisor"
	"github.com/sandeepkv93/dayplanner/internal/model"
	"github.com/spf13/cobra"
)

func newSuggestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "List quick-add suggestions",
		Long:  `List the tasks that /quick <n> adds in the planner, with the category each one gets.`,
		Args:  cobra.NoArgs,
		RunE:  runSuggestions,
	}
	cmd.Flags().Bool("tips", false, "also list productivity tips")
	return cmd
}

func runSuggestions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTASK\tCATEGORY\tMINUTES")
	for i, name := range model.QuickAddSuggestions() {
		spec := model.QuickAddSpec(name)
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, spec.Name, spec.Category, spec.DurationMinutes)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if tips, _ := cmd.Flags().GetBool("tips"); tips {
		fmt.Fprintln(out, "\nTips:")
		for _, tip := range advisor.Tips() {
			fmt.Fprintf(out, "- %s\n", tip)
		}
	}
	return nil
}
