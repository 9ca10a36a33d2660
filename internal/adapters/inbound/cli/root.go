package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/inventario/internal/adapters/inbound/console"
	"github.com/abdidvp/inventario/internal/adapters/outbound/config"
)

var (
	version = "dev"
	commit  = "none"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	dsn        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "inventario",
		Short:         "Record product codes in a local inventory",
		Long:          "Inventario records scanned or typed product codes into a local database. Run it without a command for the interactive menu.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts, false)
			if err != nil {
				return err
			}

			d := console.New(a.inventory, a, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
			if err := d.Run(cmd.Context()); err != nil {
				return fmt.Errorf("menu: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "Path to the config file")
	cmd.PersistentFlags().StringVar(&opts.dsn, "db", "", "Store DSN, overrides store.dsn (e.g. a SQLite file path)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
