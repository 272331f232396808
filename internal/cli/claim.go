package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Result claim commands",
	}

	cmd.AddCommand(newClaimResultCmd())
	cmd.AddCommand(newClaimSubmitCmd())
	cmd.AddCommand(newClaimKeyCmd())

	return cmd
}

func newClaimResultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <game-id>",
		Short: "Look up a finished game's result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result GameResult

			if err := client.Get(fmt.Sprintf("/api/v1/results/%s", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClaimSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <game-id>",
		Short: "Claim your signed outcome attestation for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			req := map[string]string{"game_id": gameID}

			var result Attestation

			if err := client.Post("/api/v1/claims", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClaimKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Show the server's attestation verification key",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]string

			if err := client.Get("/api/v1/claims/key", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
			} else {
				out.PrintMessage(result["public_key"])
			}
			return nil
		},
	}
}
