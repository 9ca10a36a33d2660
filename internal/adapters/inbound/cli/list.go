package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdidvp/inventario/internal/adapters/outbound/tui"
	"github.com/abdidvp/inventario/internal/domain"
)

type listOutput struct {
	Codes []domain.ProductCode `json:"codes"`
	Count int                  `json:"count"`
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every recorded product code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}
			// read-only: nothing to commit
			defer func() {
				if err := a.Close(false); err != nil {
					a.logger.Warn("closing inventory after list", zap.Error(err))
				}
			}()

			codes, err := a.inventory.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing inventory: %w", err)
			}

			if jsonOutput {
				if codes == nil {
					codes = []domain.ProductCode{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(listOutput{Codes: codes, Count: len(codes)})
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderInventory(codes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
