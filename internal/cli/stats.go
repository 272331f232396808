package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [wallet]",
		Short: "Show lifetime stats for a wallet (defaults to your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet := cfg.Wallet
			if len(args) > 0 {
				wallet = args[0]
			}
			if wallet == "" {
				return fmt.Errorf("no wallet configured; pass one or set --wallet")
			}

			var result PlayerStats

			if err := client.Get(fmt.Sprintf("/api/v1/stats/%s", wallet), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
