package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/inventario/internal/adapters/outbound/tui"
	"github.com/abdidvp/inventario/internal/domain"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var fromDevice bool

	cmd := &cobra.Command{
		Use:   "add [code...]",
		Short: "Record product codes without the menu",
		Long:  "Record the given codes as one batch, or capture a batch from the configured device with --device. The batch is committed before the command returns.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromDevice && len(args) > 0 {
				return errors.New("pass codes or --device, not both")
			}
			if !fromDevice && len(args) == 0 {
				return errors.New("provide at least one code, or --device to capture from the reader")
			}

			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}

			var batch domain.Batch
			if fromDevice {
				batch, err = a.inventory.AddFromDevice(cmd.Context())
			} else {
				batch, err = a.inventory.AddCodes(cmd.Context(), args...)
			}
			if err != nil {
				_ = a.Close(false)
				fmt.Fprint(cmd.ErrOrStderr(), tui.RenderAddFailed(batch, err))
				return fmt.Errorf("adding codes: %w", err)
			}

			if err := a.Close(true); err != nil {
				return fmt.Errorf("saving inventory: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderAdded(batch))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromDevice, "device", false, "Capture codes from the configured reader")

	return cmd
}
