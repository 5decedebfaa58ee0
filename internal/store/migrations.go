package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// One row per process run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL
		)`,

		// Resolved rounds with the score after each one
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			player TEXT NOT NULL CHECK(player IN ('rock', 'paper', 'scissors')),
			computer TEXT NOT NULL CHECK(computer IN ('rock', 'paper', 'scissors')),
			outcome TEXT NOT NULL CHECK(outcome IN ('player_win', 'computer_win', 'draw')),
			emotion TEXT NOT NULL,
			confidence REAL NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			player_score INTEGER NOT NULL DEFAULT 0,
			computer_score INTEGER NOT NULL DEFAULT 0,
			resolved_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_rounds_session_id ON rounds(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_resolved_at ON rounds(resolved_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
