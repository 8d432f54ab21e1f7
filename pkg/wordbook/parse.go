package wordbook

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a word book in either of the two accepted layouts:
//
//	word<TAB>meaning[<TAB>sentence]
//
// or blocks of up to three lines (word, meaning, optional sentence) closed by
// a line starting with "--". Both layouts may be mixed in one file. Words are
// lower-cased and ids are assigned in file order starting at 0.
func Parse(r io.Reader) ([]*Word, error) {
	var (
		words                   []*Word
		word, meaning, sentence string
	)

	add := func() {
		words = append(words, &Word{
			ID:       len(words),
			Word:     word,
			Meaning:  meaning,
			Sentence: sentence,
		})
		word, meaning, sentence = "", "", ""
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r\n")

		switch {
		case strings.HasPrefix(line, "--"):
			if word != "" {
				add()
			}
			word, meaning, sentence = "", "", ""
		case line == "":
			// Blank lines carry no field in either layout.
		case word == "":
			// Trailing tabs are kept: "word<TAB>" is a tab line with an empty meaning.
			raw := strings.TrimRight(strings.TrimLeft(sc.Text(), " "), " \r\n")
			if strings.Contains(raw, "\t") {
				fields := strings.Split(raw, "\t")
				word = strings.ToLower(strings.TrimSpace(fields[0]))
				if len(fields) > 1 {
					meaning = fields[1]
				}
				if len(fields) > 2 {
					sentence = fields[2]
				}
				add()
			} else {
				word = strings.ToLower(line)
			}
		case meaning == "":
			meaning = line
		default:
			sentence = line
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word book: %w", err)
	}
	// A trailing block without a closing separator still counts.
	if word != "" {
		add()
	}
	return words, nil
}

// Write emits words in the tab-separated layout. Tabs and line breaks inside
// fields are replaced by spaces so that each word stays on one line.
func Write(w io.Writer, words []*Word) error {
	bw := bufio.NewWriter(w)
	for _, wd := range words {
		line := clean(wd.Word) + "\t" + clean(wd.Meaning)
		if s := clean(wd.Sentence); s != "" {
			line += "\t" + s
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var fieldCleaner = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func clean(s string) string {
	return strings.TrimSpace(fieldCleaner.Replace(s))
}
