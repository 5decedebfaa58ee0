package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ayusman/rpsmood/internal/game"
)

// DefaultListLimit caps ListBySession when no limit is given.
const DefaultListLimit = 50

// Round is a resolved round as recorded in history.
type Round struct {
	ID            string    `db:"id" json:"id"`
	SessionID     string    `db:"session_id" json:"session_id"`
	Player        string    `db:"player" json:"player"`
	Computer      string    `db:"computer" json:"computer"`
	Outcome       string    `db:"outcome" json:"outcome"`
	Emotion       string    `db:"emotion" json:"emotion"`
	Confidence    float64   `db:"confidence" json:"confidence"`
	Message       string    `db:"message" json:"message"`
	PlayerScore   int       `db:"player_score" json:"player_score"`
	ComputerScore int       `db:"computer_score" json:"computer_score"`
	ResolvedAt    time.Time `db:"resolved_at" json:"resolved_at"`
}

// FromResult builds a history row for result with the score after it.
func FromResult(sessionID string, result game.RoundResult, score game.ScoreBoard) *Round {
	return &Round{
		ID:            result.ID,
		SessionID:     sessionID,
		Player:        string(result.Player),
		Computer:      string(result.Computer),
		Outcome:       string(result.Outcome),
		Emotion:       string(result.Emotion.Emotion),
		Confidence:    result.Emotion.Confidence,
		Message:       result.Message,
		PlayerScore:   score.Player,
		ComputerScore: score.Computer,
		ResolvedAt:    result.ResolvedAt,
	}
}

// Stats summarizes the rounds of a session.
type Stats struct {
	Total        int            `json:"total"`
	PlayerWins   int            `json:"player_wins"`
	ComputerWins int            `json:"computer_wins"`
	Draws        int            `json:"draws"`
	ByEmotion    map[string]int `json:"by_emotion"`
}

// RoundRepository stores resolved rounds.
type RoundRepository struct {
	db *sqlx.DB
}

// Rounds returns the round repository for this store.
func (s *Store) Rounds() *RoundRepository {
	return &RoundRepository{db: s.db}
}

const roundColumns = `id, session_id, player, computer, outcome, emotion, confidence,
	message, player_score, computer_score, resolved_at`

// Create inserts a round. The session must exist.
func (r *RoundRepository) Create(ctx context.Context, round *Round) error {
	round.ResolvedAt = round.ResolvedAt.UTC()

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO rounds (`+roundColumns+`)
		 VALUES (:id, :session_id, :player, :computer, :outcome, :emotion, :confidence,
		         :message, :player_score, :computer_score, :resolved_at)`,
		round,
	)
	return err
}

// GetByID retrieves a round by its ID.
func (r *RoundRepository) GetByID(ctx context.Context, id string) (*Round, error) {
	round := &Round{}
	err := r.db.GetContext(ctx, round, `SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return round, nil
}

// ListBySession returns up to limit rounds of a session, newest first.
// A non-positive limit means DefaultListLimit.
func (r *RoundRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rounds := []Round{}
	err := r.db.SelectContext(ctx, &rounds,
		`SELECT `+roundColumns+` FROM rounds
		 WHERE session_id = ?
		 ORDER BY resolved_at DESC, id DESC
		 LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

// Stats counts outcomes and emotions over a session's rounds.
func (r *RoundRepository) Stats(ctx context.Context, sessionID string) (Stats, error) {
	var rows []struct {
		Outcome string `db:"outcome"`
		Emotion string `db:"emotion"`
		N       int    `db:"n"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT outcome, emotion, COUNT(*) AS n FROM rounds
		 WHERE session_id = ?
		 GROUP BY outcome, emotion`,
		sessionID,
	)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{ByEmotion: map[string]int{}}
	for _, row := range rows {
		stats.Total += row.N
		stats.ByEmotion[row.Emotion] += row.N
		switch game.Outcome(row.Outcome) {
		case game.PlayerWin:
			stats.PlayerWins += row.N
		case game.ComputerWin:
			stats.ComputerWins += row.N
		case game.Draw:
			stats.Draws += row.N
		}
	}
	return stats, nil
}
