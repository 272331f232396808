package factory

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/shadowgame/impostor-server/internal/dependencies/mocks"
	"github.com/shadowgame/impostor-server/internal/services/signer"
	"github.com/shadowgame/impostor-server/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// NaclSigner is the concrete signer, exposed for local verification
	NaclSigner *signer.NaclSigner
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	seed := bytes.Repeat([]byte{0x42}, signer.SeedLength)
	naclSigner, err := signer.NewNaclSigner(seed, mockClock, DefaultAttestationTTL)
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app := newWithDependencies(store, mockClock, mockRandom, naclSigner, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		NaclSigner: naclSigner,
	}
}
