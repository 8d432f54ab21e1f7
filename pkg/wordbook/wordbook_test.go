package wordbook

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTabSeparated(t *testing.T) {
	src := "Cat\tfeline\tThe cat sleeps.\ndog\tcanine\n"
	words, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	want := []Word{
		{ID: 0, Word: "cat", Meaning: "feline", Sentence: "The cat sleeps."},
		{ID: 1, Word: "dog", Meaning: "canine"},
	}
	for i, w := range want {
		if *words[i] != w {
			t.Errorf("word %d = %+v; want %+v", i, *words[i], w)
		}
	}
}

func TestParseBlocks(t *testing.T) {
	src := strings.Join([]string{
		"Apple  ",
		"a fruit",
		"An apple a day.",
		"--",
		"pear",
		"another fruit",
		"-----",
		"plum",
		"a stone fruit",
	}, "\n")
	words, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	if words[0].Word != "apple" || words[0].Sentence != "An apple a day." {
		t.Errorf("unexpected first word: %+v", *words[0])
	}
	if words[1].Word != "pear" || words[1].Sentence != "" {
		t.Errorf("unexpected second word: %+v", *words[1])
	}
	if words[2].ID != 2 || words[2].Meaning != "a stone fruit" {
		t.Errorf("unterminated block not kept: %+v", *words[2])
	}
}

func TestParseMixedLayouts(t *testing.T) {
	src := "one\tuno\n--\ntwo\ndos\n--\nthree\ttres\n"
	words, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var got []string
	for _, w := range words {
		got = append(got, w.Word+"="+w.Meaning)
	}
	if strings.Join(got, ",") != "one=uno,two=dos,three=tres" {
		t.Fatalf("unexpected words: %v", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	words := []*Word{
		{Word: "cat", Meaning: "feline", Sentence: "A cat\tsat."},
		{Word: "dog", Meaning: "canine\nanimal"},
		{Word: "猫"},
		{Word: "bird", Meaning: "avian"},
		{Word: "fish", Sentence: "Fish swim."},
	}
	var buf bytes.Buffer
	if err := Write(&buf, words); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "cat\tfeline\tA cat sat.\ndog\tcanine animal\n猫\t\nbird\tavian\nfish\t\tFish swim.\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output %q", got)
	}
	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(back) != len(words) {
		t.Fatalf("expected %d words back, got %d: %+v", len(words), len(back), back)
	}
	if back[1].Meaning != "canine animal" {
		t.Fatalf("unexpected meaning %q", back[1].Meaning)
	}
	// An empty meaning must not swallow the following lines.
	if back[2].Word != "猫" || back[2].Meaning != "" || back[3].Word != "bird" || back[3].Meaning != "avian" {
		t.Fatalf("empty meaning broke the layout: %+v %+v", *back[2], *back[3])
	}
	if back[4].Meaning != "" || back[4].Sentence != "Fish swim." {
		t.Fatalf("unexpected fish: %+v", *back[4])
	}
}

func TestSavePath(t *testing.T) {
	tests := []struct{ in, out string }{
		{"words.txt", "words.json"},
		{"dir/book.tsv", "dir/book.json"},
		{"noext", "noext.json"},
		{"dir/book.json", "dir/book.save.json"},
	}
	for _, tt := range tests {
		if got := SavePath(tt.in); got != tt.out {
			t.Errorf("SavePath(%q) = %q; want %q", tt.in, got, tt.out)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte("cat\tfeline\ndog\tcanine\nfish\taquatic\n"), 0644); err != nil {
		t.Fatalf("write book: %v", err)
	}

	book, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	book.Words[0].Score, book.Words[0].TmpScore = 2, 1
	book.Words[0].TotalPass, book.Words[0].TotalFail = 7, 3
	book.Words[1].TotalFail = 1
	// fish was never answered; its score must not be carried over.
	book.Words[2].Score = 5
	if err := book.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Drop dog from the source file and add a new word.
	if err := os.WriteFile(path, []byte("cat\tfeline\nfish\taquatic\nbird\tavian\n"), 0644); err != nil {
		t.Fatalf("rewrite book: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Len() != 3 {
		t.Fatalf("expected 3 words, got %d", again.Len())
	}
	cat := again.Words[0]
	if cat.Score != 2 || cat.TmpScore != 1 || cat.TotalPass != 7 || cat.TotalFail != 3 {
		t.Errorf("cat progress not restored: %+v", *cat)
	}
	if fish := again.Words[1]; fish.Score != 0 {
		t.Errorf("fish score carried over without attempts: %+v", *fish)
	}
	if bird := again.Words[2]; bird.Attempts() != 0 || bird.Score != 0 {
		t.Errorf("new word should start fresh: %+v", *bird)
	}
}

func TestLoadJSONNamedBook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	if err := os.WriteFile(path, []byte("cat\tfeline\n"), 0644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	book, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	book.Words[0].TotalPass = 1
	if err := book.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload after save: %v", err)
	}
	if again.Len() != 1 || again.Words[0].TotalPass != 1 {
		t.Fatalf("progress not restored: %+v", again.Words)
	}
}

func TestLoadMalformedSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte("cat\tfeline\n"), 0644); err != nil {
		t.Fatalf("write book: %v", err)
	}
	if err := os.WriteFile(SavePath(path), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed save file")
	}
}

func TestLoadMissingBook(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing word book")
	}
}

func TestMergeFirstOccurrence(t *testing.T) {
	words := []*Word{{ID: 0, Word: "run"}, {ID: 1, Word: "run"}}
	Merge(words, []Word{{Word: "run", Score: 3, TotalPass: 4}, {Word: "gone", TotalPass: 1}})
	if words[0].Score != 3 || words[1].Score != 0 {
		t.Fatalf("expected only the first duplicate to receive progress, got %+v %+v", *words[0], *words[1])
	}
}
