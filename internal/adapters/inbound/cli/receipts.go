package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dodgate/dodgate/internal/adapters/outbound/receipt"
	"github.com/dodgate/dodgate/internal/adapters/outbound/tui"
	"github.com/dodgate/dodgate/internal/domain"
)

func newReceiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "Inspect and verify audit receipts",
	}
	cmd.AddCommand(newReceiptsVerifyCmd())
	cmd.AddCommand(newReceiptsListCmd())
	return cmd
}

func newReceiptsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>",
		Short: "Recompute a receipt's hash chain and compare to its final hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := receipt.New(filepath.Dir(args[0]))
			r, err := store.Load(args[0])
			if err != nil {
				return err
			}

			if !domain.VerifyReceipt(r) {
				fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderTamperWarning(args[0]))
				return fmt.Errorf("receipt verification failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "receipt verified: %s (%s, score %.1f, %d check(s))\n",
				filepath.Base(args[0]), r.Verdict, r.Score, len(r.CheckHashes))
			return nil
		},
	}
}

func newReceiptsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [path]",
		Short: "List stored receipts for a workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := "."
			if len(args) == 1 {
				workspace = args[0]
			}

			store := receipt.New(filepath.Join(workspace, stateDir, "receipts"))
			paths, err := store.List()
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
