package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// BookKey is the form of a word-book path stored in the sessions table, so
// that "a.txt" and "./a.txt" share one history.
func BookKey(bookPath string) string {
	p := strings.TrimSpace(bookPath)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// CreateSession inserts a new session for the word book and returns its id.
func CreateSession(db DBExecutor, bookPath string, startedAt time.Time) (int64, error) {
	if strings.TrimSpace(bookPath) == "" {
		return 0, fmt.Errorf("bookPath must be non-empty")
	}
	res, err := db.Exec(`INSERT INTO sessions (book_path, started_at) VALUES (?, ?)`, BookKey(bookPath), startedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// UpdateSessionTotals stores the session counters as of a checkpoint.
func UpdateSessionTotals(db DBExecutor, sessionID int64, passed, failed, memorized int, at time.Time) error {
	if sessionID <= 0 {
		return fmt.Errorf("sessionID must be positive")
	}
	res, err := db.Exec(`UPDATE sessions SET passed = ?, failed = ?, memorized = ?, ended_at = ? WHERE id = ?`,
		passed, failed, memorized, at.Unix(), sessionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %d not found", sessionID)
	}
	return nil
}

// RecordReview appends one graded answer to the session's log.
func RecordReview(db DBExecutor, r Review) error {
	if r.SessionID <= 0 {
		return fmt.Errorf("sessionID must be positive")
	}
	if strings.TrimSpace(r.Word) == "" {
		return fmt.Errorf("word must be non-empty")
	}
	_, err := db.Exec(`INSERT INTO reviews (session_id, word_id, word, correct, graduated, score, tmp_score, answered_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.WordID, r.Word, r.Correct, r.Graduated, r.Score, r.TmpScore, r.AnsweredAt.Unix())
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

const sessionColumns = `id, book_path, started_at, ended_at, passed, failed, memorized`

func scanSession(row interface{ Scan(...interface{}) error }) (Session, error) {
	var s Session
	var started, ended int64
	if err := row.Scan(&s.ID, &s.BookPath, &started, &ended, &s.Passed, &s.Failed, &s.Memorized); err != nil {
		return Session{}, err
	}
	s.StartedAt = time.Unix(started, 0)
	if ended > 0 {
		s.EndedAt = time.Unix(ended, 0)
	}
	return s, nil
}

// LastSession returns the most recent session for the word book that reached
// at least one checkpoint. ok is false when there is none.
func LastSession(db DBExecutor, bookPath string) (s Session, ok bool, err error) {
	s, err = scanSession(db.QueryRow(`SELECT `+sessionColumns+` FROM sessions
		WHERE book_path = ? AND ended_at > 0 ORDER BY id DESC LIMIT 1`, BookKey(bookPath)))
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}
	return s, true, nil
}

// ListReviews returns a session's reviews in answer order.
func ListReviews(db DBExecutor, sessionID int64) ([]Review, error) {
	rows, err := db.Query(`SELECT id, session_id, word_id, word, correct, graduated, score, tmp_score, answered_at
		FROM reviews WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Review
	for rows.Next() {
		var r Review
		var at int64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.WordID, &r.Word, &r.Correct, &r.Graduated, &r.Score, &r.TmpScore, &at); err != nil {
			return nil, err
		}
		r.AnsweredAt = time.Unix(at, 0)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetWordStats aggregates every recorded answer for word.
func GetWordStats(db DBExecutor, word string) (WordStats, error) {
	st := WordStats{Word: word}
	var last sql.NullInt64
	err := db.QueryRow(`SELECT
		COALESCE(SUM(correct), 0),
		COALESCE(SUM(1 - correct), 0),
		COALESCE(SUM(graduated), 0),
		MAX(answered_at)
	FROM reviews WHERE word = ?`, word).Scan(&st.Passed, &st.Failed, &st.Graduated, &last)
	if err != nil {
		return WordStats{}, err
	}
	if last.Valid {
		st.LastSeen = time.Unix(last.Int64, 0)
	}
	return st, nil
}

// MissedWords returns lifetime stats for every word answered wrongly in the
// session, in the order of their first miss.
func MissedWords(db DBExecutor, sessionID int64) ([]WordStats, error) {
	reviews, err := ListReviews(db, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	seen := make(map[string]bool)
	var out []WordStats
	for _, r := range reviews {
		if r.Correct || seen[r.Word] {
			continue
		}
		seen[r.Word] = true
		st, err := GetWordStats(db, r.Word)
		if err != nil {
			return nil, fmt.Errorf("stats for %q: %w", r.Word, err)
		}
		out = append(out, st)
	}
	return out, nil
}
