package middleware

import (
	"context"
	"net/http"

	"github.com/shadowgame/impostor-server/internal/api/apierr"
	"github.com/shadowgame/impostor-server/internal/model"
)

// WalletHeader carries the caller's wallet address. Signature
// verification of the wallet is an upstream gateway concern; the game
// server trusts the header as the caller's identity.
const WalletHeader = "X-Wallet-Address"

type contextKey string

const walletContextKey contextKey = "wallet"

// Wallet creates middleware that requires a wallet identity header
func Wallet() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wallet := model.NormalizeWallet(r.Header.Get(WalletHeader))
			if wallet == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), walletContextKey, wallet)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetWallet returns the wallet from the context, if present
func GetWallet(ctx context.Context) (model.Wallet, bool) {
	wallet, ok := ctx.Value(walletContextKey).(model.Wallet)
	return wallet, ok
}

// MustGetWallet returns the wallet from the context, panicking if absent.
// Only for handlers behind the Wallet middleware.
func MustGetWallet(ctx context.Context) model.Wallet {
	wallet, ok := GetWallet(ctx)
	if !ok {
		panic("wallet missing from context")
	}
	return wallet
}
