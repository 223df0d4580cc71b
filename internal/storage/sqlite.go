// Package storage provides SQLite-based persistence: local run scores,
// the pending score-submission queue, the progression blob store, and the
// HTTP API's player and leaderboard tables.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished local run.
type ScoreEntry struct {
	ID         int64
	Mode       string
	Seed       int64
	Score      int
	Coins      int
	Level      int
	DurationMs int64
	CreatedAt  time.Time
}

// QueuedScore is a submission waiting for the API to come back.
type QueuedScore struct {
	ID       int64
	PlayerID string
	Score    int
	Mode     string
}

// LeaderboardEntry is one row of the API leaderboard: a player's best
// score for the requested period and mode.
type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_seed ON scores(seed, score DESC);

		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS score_queue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			mode TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS api_players (
			id TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS api_scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			mode TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_api_scores_player ON api_scores(player_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_api_scores_created ON api_scores(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished local run. Returns the inserted ID.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (mode, seed, score, coins, level, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Mode, e.Seed, e.Score, e.Coins, e.Level, e.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the best local runs, optionally filtered by mode.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, mode, seed, score, coins, level, duration_ms, created_at
		 FROM scores`
	args := []any{}
	if mode != "" {
		query += " WHERE mode = ?"
		args = append(args, mode)
	}
	query += " ORDER BY score DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanScores(rows)
}

// BestScore returns the highest local score for a mode (any mode when
// empty), or 0 when no runs are recorded.
func (s *Store) BestScore(mode string) (int, error) {
	query := "SELECT COALESCE(MAX(score), 0) FROM scores"
	args := []any{}
	if mode != "" {
		query += " WHERE mode = ?"
		args = append(args, mode)
	}

	var best int
	if err := s.db.QueryRow(query, args...).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return best, nil
}

// BestForSeed returns the highest local score played under a specific seed.
// The daily challenge uses this for the per-day personal best.
func (s *Store) BestForSeed(seed int64) (int, error) {
	var best int
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(score), 0) FROM scores WHERE seed = ?", seed,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query seed best: %w", err)
	}
	return best, nil
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Seed, &e.Score, &e.Coins, &e.Level, &e.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Load implements persist.Store over the blobs table.
func (s *Store) Load(key string, v any) (bool, error) {
	var raw []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot load blob %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("storage: cannot decode blob %q: %w", key, err)
	}
	return true, nil
}

// Save implements persist.Store over the blobs table.
func (s *Store) Save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode blob %q: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save blob %q: %w", key, err)
	}
	return nil
}

// EnqueueScore parks a failed submission for a later flush.
func (s *Store) EnqueueScore(playerID string, score int, mode string) error {
	_, err := s.db.Exec(
		"INSERT INTO score_queue (player_id, score, mode) VALUES (?, ?, ?)",
		playerID, score, mode,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot enqueue score: %w", err)
	}
	return nil
}

// PendingScores returns queued submissions in enqueue order.
func (s *Store) PendingScores() ([]QueuedScore, error) {
	rows, err := s.db.Query(
		"SELECT id, player_id, score, mode FROM score_queue ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query score queue: %w", err)
	}
	defer rows.Close()

	var queued []QueuedScore
	for rows.Next() {
		var q QueuedScore
		if err := rows.Scan(&q.ID, &q.PlayerID, &q.Score, &q.Mode); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		queued = append(queued, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return queued, nil
}

// DequeueScore removes a successfully flushed submission.
func (s *Store) DequeueScore(id int64) error {
	_, err := s.db.Exec("DELETE FROM score_queue WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot dequeue score: %w", err)
	}
	return nil
}

// RegisterPlayer records an API player ID. Re-registering is a no-op.
func (s *Store) RegisterPlayer(id string) error {
	_, err := s.db.Exec(
		"INSERT INTO api_players (id) VALUES (?) ON CONFLICT(id) DO NOTHING", id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot register player: %w", err)
	}
	return nil
}

// PlayerExists reports whether an API player ID is registered.
func (s *Store) PlayerExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM api_players WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query player: %w", err)
	}
	return true, nil
}

// SubmitScore records an API score for a registered player.
func (s *Store) SubmitScore(playerID string, score int, mode string) error {
	_, err := s.db.Exec(
		"INSERT INTO api_scores (player_id, score, mode) VALUES (?, ?, ?)",
		playerID, score, mode,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot submit score: %w", err)
	}
	return nil
}

// Leaderboard returns each player's best score for the period, descending.
// period is "daily", "weekly", or "all"; an empty mode skips the filter.
func (s *Store) Leaderboard(period, mode string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := "SELECT player_id, MAX(score) AS best FROM api_scores"
	var conds []string
	var args []any

	switch period {
	case "daily":
		conds = append(conds, "created_at >= datetime('now', 'start of day')")
	case "weekly":
		conds = append(conds, "created_at >= datetime('now', '-7 days')")
	}
	if mode != "" {
		conds = append(conds, "mode = ?")
		args = append(args, mode)
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " GROUP BY player_id ORDER BY best DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
