package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "impgame",
		Short: "CLI tool for the impostor game API",
		Long: `impgame is a CLI tool for interacting with the impostor game JSON API.

It supports all API operations including room management, night actions,
day votes, chat, result claims, and real-time SSE event streaming.

Identity is a wallet address sent with every request.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load wallet from file if not provided via flag/env
			if err := cfg.LoadWallet(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Wallet)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: IMPGAME_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Wallet, "wallet", cfg.Wallet, "Wallet address (env: IMPGAME_WALLET)")
	rootCmd.PersistentFlags().StringVar(&cfg.WalletFile, "wallet-file", cfg.WalletFile, "Wallet file path (env: IMPGAME_WALLET_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newWalletCmd())
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newClaimCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
