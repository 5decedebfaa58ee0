package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/store"
)

// History records resolved rounds. It is never read back into game state.
type History interface {
	RecordRound(ctx context.Context, result game.RoundResult, score game.ScoreBoard) error
}

// StoreHistory writes rounds to a store under one session.
type StoreHistory struct {
	store   *store.Store
	session *store.Session
}

// NewStoreHistory opens a new session in st.
func NewStoreHistory(ctx context.Context, st *store.Store, startedAt time.Time) (*StoreHistory, error) {
	sess := &store.Session{StartedAt: startedAt}
	if err := st.Sessions().Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &StoreHistory{store: st, session: sess}, nil
}

// SessionID returns the ID rounds are recorded under.
func (h *StoreHistory) SessionID() string {
	return h.session.ID
}

// RecordRound inserts result with the score after it.
func (h *StoreHistory) RecordRound(ctx context.Context, result game.RoundResult, score game.ScoreBoard) error {
	return h.store.Rounds().Create(ctx, store.FromResult(h.session.ID, result, score))
}
