package signer

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/nacl/sign"

	"github.com/shadowgame/impostor-server/internal/dependencies/clock"
	"github.com/shadowgame/impostor-server/internal/model"
)

// SeedLength is the required length of the signing key seed in bytes
const SeedLength = 32

// Attestation is a signed statement of a player's outcome in a finished
// game, handed out once per (game, wallet) for external redemption.
type Attestation struct {
	GameID    model.GameID
	Wallet    model.Wallet
	Won       bool
	RepDelta  int
	ExpiresAt time.Time

	// Signature is the hex-encoded detached signature over the packed
	// attestation message
	Signature string
}

// Signer produces outcome attestations
type Signer interface {
	Sign(gameID model.GameID, wallet model.Wallet, won bool, repDelta int) (*Attestation, error)
	PublicKeyHex() string
}

// NaclSigner signs attestations with an ed25519 key derived from a
// fixed seed, so the verifying side only needs the public key.
type NaclSigner struct {
	publicKey  *[32]byte
	privateKey *[64]byte
	clock      clock.Clock
	ttl        time.Duration
}

// Ensure NaclSigner implements Signer
var _ Signer = (*NaclSigner)(nil)

// NewNaclSigner derives a signing keypair from the given 32-byte seed.
// The ttl bounds how long issued attestations remain redeemable.
func NewNaclSigner(seed []byte, clock clock.Clock, ttl time.Duration) (*NaclSigner, error) {
	if len(seed) != SeedLength {
		return nil, fmt.Errorf("signing seed must be %d bytes, got %d", SeedLength, len(seed))
	}

	publicKey, privateKey, err := sign.GenerateKey(bytes.NewReader(seed))
	if err != nil {
		return nil, fmt.Errorf("deriving signing key: %w", err)
	}

	return &NaclSigner{
		publicKey:  publicKey,
		privateKey: privateKey,
		clock:      clock,
		ttl:        ttl,
	}, nil
}

// packMessage builds the canonical byte message an attestation signs.
// Field order and encoding must stay stable across versions or issued
// signatures stop verifying.
func packMessage(gameID model.GameID, wallet model.Wallet, won bool, repDelta int, expiresAt time.Time) []byte {
	wonFlag := 0
	if won {
		wonFlag = 1
	}
	return []byte(fmt.Sprintf("%s|%s|%d|%d|%d", gameID, wallet, wonFlag, repDelta, expiresAt.Unix()))
}

// Sign issues an attestation for the given outcome
func (s *NaclSigner) Sign(gameID model.GameID, wallet model.Wallet, won bool, repDelta int) (*Attestation, error) {
	expiresAt := s.clock.Now().Add(s.ttl)
	message := packMessage(gameID, wallet, won, repDelta, expiresAt)

	signed := sign.Sign(nil, message, s.privateKey)
	// sign.Sign prepends the 64-byte signature to the message
	signature := signed[:sign.Overhead]

	return &Attestation{
		GameID:    gameID,
		Wallet:    wallet,
		Won:       won,
		RepDelta:  repDelta,
		ExpiresAt: expiresAt,
		Signature: hex.EncodeToString(signature),
	}, nil
}

// PublicKeyHex returns the hex-encoded verification key
func (s *NaclSigner) PublicKeyHex() string {
	return hex.EncodeToString(s.publicKey[:])
}

// Verify checks an attestation's signature and expiry against the
// signer's own key. Primarily for tests and local diagnostics; real
// verification happens on the redeeming side.
func (s *NaclSigner) Verify(att *Attestation) error {
	if s.clock.Now().After(att.ExpiresAt) {
		return errors.New("attestation expired")
	}

	signature, err := hex.DecodeString(att.Signature)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}
	if len(signature) != sign.Overhead {
		return errors.New("signature has wrong length")
	}

	message := packMessage(att.GameID, att.Wallet, att.Won, att.RepDelta, att.ExpiresAt)
	signed := append(signature, message...)
	if _, ok := sign.Open(nil, signed, s.publicKey); !ok {
		return errors.New("signature does not verify")
	}
	return nil
}
