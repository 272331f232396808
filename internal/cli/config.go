package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	Wallet     string
	WalletFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("IMPGAME_SERVER", "http://localhost:8080"),
		Wallet:     os.Getenv("IMPGAME_WALLET"),
		WalletFile: getEnvOrDefault("IMPGAME_WALLET_FILE", defaultWalletFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadWallet loads the wallet address from file if not already set
func (c *Config) LoadWallet() error {
	if c.Wallet != "" {
		return nil
	}

	data, err := os.ReadFile(c.WalletFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No wallet file is fine
		}
		return err
	}

	c.Wallet = strings.TrimSpace(string(data))
	return nil
}

// SaveWallet saves the wallet address to the wallet file
func (c *Config) SaveWallet(wallet string) error {
	c.Wallet = wallet

	dir := filepath.Dir(c.WalletFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.WalletFile, []byte(wallet), 0600)
}

func defaultWalletFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".impgame/wallet"
	}
	return filepath.Join(home, ".impgame", "wallet")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
