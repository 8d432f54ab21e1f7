package wordbook

// Word is a single vocabulary entry together with its study progress.
type Word struct {
	ID       int    `json:"id"`
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Sentence string `json:"sentence"`
	// Score is the mastery level. It only grows, once per graduation.
	Score int `json:"score"`
	// TmpScore is the correct-answer streak toward the next graduation.
	TmpScore  int `json:"tmp_score"`
	TotalPass int `json:"total_pass"`
	TotalFail int `json:"total_fail"`
}

// Attempts returns the lifetime number of graded answers for the word.
func (w *Word) Attempts() int { return w.TotalPass + w.TotalFail }

// Book is the learning book: every word of a word-book file, in file order.
type Book struct {
	Path  string
	Words []*Word
}

// Len returns the number of words in the book.
func (b *Book) Len() int { return len(b.Words) }
