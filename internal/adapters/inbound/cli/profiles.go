package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dodgate/dodgate/internal/domain"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			builtins := domain.BuiltinProfiles()

			names := make([]string, 0, len(builtins))
			for name := range builtins {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				p := builtins[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s min score %.0f, max warnings %d — %s\n",
					p.Name, p.Thresholds.MinReadinessScore, p.Thresholds.MaxWarnings, p.Description)
			}
			return nil
		},
	}
}
