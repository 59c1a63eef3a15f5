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

func newValidateCmd() *cobra.Command {
	var (
		profileFlag string
		modeFlag    string
		evidence    bool
		compress    bool
		jsonOut     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Run the Definition of Done gate against a workspace",
		Long:  "Execute the profile's checks, compute the readiness score and verdict, write a receipt, and optionally assemble an evidence bundle.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := "."
			if len(args) == 1 {
				workspace = args[0]
			}
			workspace, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			profile, err := resolveProfile(profileFlag)
			if err != nil {
				return err
			}

			validator, bundler := newValidator(workspace, compress)
			opts := application.ValidatorOptions{
				Profile:          profile,
				Mode:             domain.ValidationMode(modeFlag),
				GenerateEvidence: evidence,
			}

			result, err := validator.Validate(cmd.Context(), workspace, opts)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderResult(result))
				for _, w := range bundler.Warnings() {
					fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
				}
			}

			if result.Verdict == domain.VerdictFail {
				return fmt.Errorf("not ready: %d fatal failure(s)",
					len(domain.FatalFailures(result.CheckResults)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profileFlag, "profile", "", "Built-in profile name or profile file path")
	cmd.Flags().StringVar(&modeFlag, "mode", string(domain.ModeFull), "Validation mode: full, quick or ci")
	cmd.Flags().BoolVar(&evidence, "evidence", false, "Assemble an evidence bundle")
	cmd.Flags().BoolVar(&compress, "compress", false, "Compress the evidence bundle into a tar.gz")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")

	return cmd
}
