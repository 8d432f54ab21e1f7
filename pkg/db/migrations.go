package db

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_path TEXT NOT NULL,
	started_at INTEGER NOT NULL,
	ended_at INTEGER NOT NULL DEFAULT 0,
	passed INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	memorized INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sessions_book ON sessions(book_path);

CREATE TABLE IF NOT EXISTS reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	word_id INTEGER NOT NULL,
	word TEXT NOT NULL,
	correct INTEGER NOT NULL,
	graduated INTEGER NOT NULL DEFAULT 0,
	score INTEGER NOT NULL,
	tmp_score INTEGER NOT NULL,
	answered_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_word ON reviews(word);
CREATE INDEX IF NOT EXISTS idx_reviews_session ON reviews(session_id)
`
