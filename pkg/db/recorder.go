package db

import (
	"database/sql"
	"time"

	"github.com/japaniel/vocabull/pkg/wordbook"
)

// Recorder writes a study session's answers and checkpoints to the history
// database.
type Recorder struct {
	DB        *sql.DB
	SessionID int64
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// NewRecorder starts a new session row for bookPath.
func NewRecorder(conn *sql.DB, bookPath string) (*Recorder, error) {
	r := &Recorder{DB: conn}
	id, err := CreateSession(conn, bookPath, r.now())
	if err != nil {
		return nil, err
	}
	r.SessionID = id
	return r, nil
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// RecordReview logs an answer together with the word's updated progress.
func (r *Recorder) RecordReview(w *wordbook.Word, correct, graduated bool) error {
	return RecordReview(r.DB, Review{
		SessionID:  r.SessionID,
		WordID:     w.ID,
		Word:       w.Word,
		Correct:    correct,
		Graduated:  graduated,
		Score:      w.Score,
		TmpScore:   w.TmpScore,
		AnsweredAt: r.now(),
	})
}

// RecordCheckpoint stores the session counters.
func (r *Recorder) RecordCheckpoint(passed, failed, memorized int) error {
	return UpdateSessionTotals(r.DB, r.SessionID, passed, failed, memorized, r.now())
}
