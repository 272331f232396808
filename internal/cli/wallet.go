package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the wallet address used for identity",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <address>",
		Short: "Save a wallet address for future commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SaveWallet(args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Wallet saved to %s", cfg.WalletFile))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the configured wallet address",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if cfg.Wallet == "" {
				out.PrintMessage("No wallet configured")
				return nil
			}
			out.PrintMessage(cfg.Wallet)
			return nil
		},
	})

	return cmd
}
