package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-game commands",
	}

	cmd.AddCommand(newGameActionCmd())
	cmd.AddCommand(newGameVoteCmd())
	cmd.AddCommand(newGameTransitionCmd())
	cmd.AddCommand(newGameChatCmd())

	return cmd
}

func newGameActionCmd() *cobra.Command {
	var actionType string
	var targetID string

	cmd := &cobra.Command{
		Use:   "action <room-id>",
		Short: "Submit a night action",
		Long: `Submit a night action for your role.

Action types:
  kill        - impostor kill attempt
  investigate - detective investigation
  protect     - doctor protection

Omit --target to withdraw a previously submitted action.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]
			req := map[string]string{
				"type":      actionType,
				"target_id": targetID,
			}

			var result ActionAck

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/actions", roomID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&actionType, "type", "", "Action type: kill, investigate, protect (required)")
	cmd.Flags().StringVar(&targetID, "target", "", "Target player ID (omit to withdraw)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newGameVoteCmd() *cobra.Command {
	var targetID string
	var skip bool

	cmd := &cobra.Command{
		Use:   "vote <room-id>",
		Short: "Submit a day vote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]

			if !skip && targetID == "" {
				return fmt.Errorf("either --target or --skip is required")
			}
			if skip {
				targetID = ""
			}

			req := map[string]string{"target_id": targetID}

			var result VoteAck

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/votes", roomID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&targetID, "target", "", "Player ID to vote out")
	cmd.Flags().BoolVar(&skip, "skip", false, "Vote to skip the elimination")

	return cmd
}

func newGameTransitionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transition <room-id>",
		Short: "Advance the room to its next phase (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]

			var result RoomSnapshot

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/transition", roomID), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Day chat commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "send <room-id> <message...>",
		Short: "Send a chat message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]
			content := strings.Join(args[1:], " ")
			req := map[string]string{"content": content}

			var result ChatMessage

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/chat", roomID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history <room-id>",
		Short: "Show the current day's chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := args[0]

			var result []ChatMessage

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/chat", roomID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}
