package db

import "time"

// Session is one sitting with a word book.
type Session struct {
	ID        int64
	BookPath  string
	StartedAt time.Time
	// EndedAt is the time of the last checkpoint; zero if none happened.
	EndedAt   time.Time
	Passed    int
	Failed    int
	Memorized int
}

// Review is a single graded answer, with the word's progress after grading.
type Review struct {
	ID         int64
	SessionID  int64
	WordID     int
	Word       string
	Correct    bool
	Graduated  bool
	Score      int
	TmpScore   int
	AnsweredAt time.Time
}

// WordStats aggregates a word's answers across all recorded sessions.
type WordStats struct {
	Word      string
	Passed    int
	Failed    int
	Graduated int
	LastSeen  time.Time
}
