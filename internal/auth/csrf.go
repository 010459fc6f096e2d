package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

const csrfTokenBytes = 32

// CSRFGuard issues and verifies per-session anti-forgery tokens. One token
// is active per session id; regeneration overwrites the prior token.
type CSRFGuard struct {
	store    CSRFStore
	lifetime time.Duration
}

// NewCSRFGuard creates a guard over the given store. Lifetime defaults to
// one hour.
func NewCSRFGuard(store CSRFStore, lifetime time.Duration) *CSRFGuard {
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &CSRFGuard{store: store, lifetime: lifetime}
}

// Generate creates a high-entropy token for the session, replacing any prior
// token, and lazily sweeps expired records.
func (g *CSRFGuard) Generate(ctx context.Context, sessionID string) (string, error) {
	if err := g.store.Sweep(ctx); err != nil {
		return "", fmt.Errorf("csrf sweep: %w", err)
	}

	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("csrf entropy: %w", err)
	}
	token := hex.EncodeToString(buf)

	rec := CSRFRecord{
		Token:     token,
		ExpiresAt: time.Now().Add(g.lifetime),
	}
	if err := g.store.Put(ctx, sessionID, rec); err != nil {
		return "", fmt.Errorf("csrf store: %w", err)
	}

	return token, nil
}

// Verify checks a candidate token against the session's active record.
// Expired records are deleted on sight. The comparison is constant-time to
// avoid a timing side-channel.
func (g *CSRFGuard) Verify(ctx context.Context, sessionID, candidate string) bool {
	rec, ok, err := g.store.Get(ctx, sessionID)
	if err != nil || !ok {
		return false
	}

	if rec.Expired(time.Now()) {
		_ = g.store.Delete(ctx, sessionID)
		return false
	}

	return subtle.ConstantTimeCompare([]byte(rec.Token), []byte(candidate)) == 1
}
