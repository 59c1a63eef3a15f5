package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dodgate/dodgate/internal/adapters/outbound/tui"
	"github.com/dodgate/dodgate/internal/application"
	"github.com/dodgate/dodgate/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		profileFlag string
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "check <id> [path]",
		Short: "Run a single check by id",
		Long:  "Execute one registered check against the workspace, ignoring dependency resolution.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkID := args[0]
			workspace := "."
			if len(args) == 2 {
				workspace = args[1]
			}
			workspace, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			profile, err := resolveProfile(profileFlag)
			if err != nil {
				return err
			}

			validator, _ := newValidator(workspace, false)
			result, err := validator.ValidateSingle(cmd.Context(), workspace, checkID,
				application.ValidatorOptions{Profile: profile})
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheckResult(result))
			}

			if result.Status == domain.StatusFail {
				return fmt.Errorf("check %s failed", checkID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileFlag, "profile", "", "Built-in profile name or profile file path")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")

	return cmd
}
