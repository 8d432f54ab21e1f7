package study

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/japaniel/vocabull/pkg/wordbook"
)

// TieBreak decides which of several lowest-score candidates enters the window.
type TieBreak int

const (
	// LowestID always picks the candidate with the smallest id.
	LowestID TieBreak = iota
	// Random picks uniformly among the tied candidates.
	Random
)

func (t TieBreak) String() string {
	if t == Random {
		return "random"
	}
	return "lowest-id"
}

// Selection is the learning set chosen for a session.
type Selection struct {
	Set      []*wordbook.Word
	TieBreak TieBreak
}

// ChunkCount returns how many learning sets of chunkSize words a book of n
// words offers.
func ChunkCount(n, chunkSize int) int {
	if chunkSize <= 0 {
		return 0
	}
	return (n + chunkSize - 1) / chunkSize
}

// Chunk returns the index-th (1-based) contiguous learning set, clipped to the
// end of the book.
func Chunk(words []*wordbook.Word, index, chunkSize int) []*wordbook.Word {
	start := (index - 1) * chunkSize
	if index < 1 || start >= len(words) {
		return nil
	}
	end := min(start+chunkSize, len(words))
	return append([]*wordbook.Word(nil), words[start:end]...)
}

// SelectSet picks the learning set. Books that fit in one chunk are studied
// whole; otherwise the user chooses a chunk number or "all", and anything
// else is asked again.
func SelectSet(words []*wordbook.Word, chunkSize int, c *Console) (Selection, error) {
	if len(words) <= chunkSize {
		return Selection{Set: append([]*wordbook.Word(nil), words...), TieBreak: LowestID}, nil
	}

	n := ChunkCount(len(words), chunkSize)
	for {
		line, err := c.Prompt(fmt.Sprintf("    Which learning set to use (1-%d; all)? ", n))
		if err != nil {
			return Selection{}, err
		}
		if strings.HasPrefix(line, "all") {
			return Selection{Set: append([]*wordbook.Word(nil), words...), TieBreak: Random}, nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || i < 1 || i > n {
			continue
		}
		return Selection{Set: Chunk(words, i, chunkSize), TieBreak: LowestID}, nil
	}
}
