package wordbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SavePath returns the progress file for a word book: the same base name
// with a ".json" extension, or ".save.json" when the book itself is a .json
// file so that saving never overwrites it.
func SavePath(bookPath string) string {
	ext := filepath.Ext(bookPath)
	base := strings.TrimSuffix(bookPath, ext)
	if strings.EqualFold(ext, ".json") {
		return base + ".save.json"
	}
	return base + ".json"
}

// Load parses the word book at path and merges any saved progress found in
// its save file. A missing save file is not an error.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := Parse(f)
	if err != nil {
		return nil, err
	}
	book := &Book{Path: path, Words: words}

	saved, err := readSave(SavePath(path))
	if err != nil {
		return nil, err
	}
	Merge(book.Words, saved)
	return book, nil
}

func readSave(path string) ([]Word, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var saved []Word
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parse save file %s: %w", path, err)
	}
	return saved, nil
}

// Merge copies progress from saved entries onto words with the same word
// string. Only entries that were answered at least once are carried over, and
// saved entries without a match are dropped. When a word appears more than
// once in the book, the first occurrence receives the progress.
func Merge(words []*Word, saved []Word) {
	first := make(map[string]*Word, len(words))
	for _, w := range words {
		if _, ok := first[w.Word]; !ok {
			first[w.Word] = w
		}
	}
	for _, old := range saved {
		w, ok := first[old.Word]
		if !ok {
			continue
		}
		if old.TotalPass == 0 && old.TotalFail == 0 {
			continue
		}
		w.TotalPass = old.TotalPass
		w.TotalFail = old.TotalFail
		w.Score = old.Score
		w.TmpScore = old.TmpScore
	}
}

// SavePath returns where Save writes the book's progress.
func (b *Book) SavePath() string { return SavePath(b.Path) }

// Save writes every word of the book, progress included, to the save file.
func (b *Book) Save() error {
	words := b.Words
	if words == nil {
		words = []*Word{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := os.WriteFile(b.SavePath(), data, 0644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	return nil
}
