package enrich

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/japaniel/vocabull/pkg/article"
	"github.com/japaniel/vocabull/pkg/dictionary"
	"github.com/japaniel/vocabull/pkg/wordbook"
)

// maxSenses caps how many dictionary senses make up a filled-in meaning.
const maxSenses = 3

// Tokenizer splits a sentence into tokens. *article.Analyzer satisfies it.
type Tokenizer interface {
	Analyze(text string) ([]article.Token, error)
}

// WorkerPoolInterface abstracts the worker pool so tests can inject failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Enricher fills in missing example sentences and meanings of word-book
// entries from an article and, optionally, a dictionary.
type Enricher struct {
	Tokenizer Tokenizer
	// Dict is optional; without it meanings are left alone.
	Dict *dictionary.Index
	// Workers is the number of sentences tokenized in parallel.
	Workers int
	// Logger is used for informational messages. nil means no logging.
	Logger *log.Logger

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewEnricher creates an Enricher with the default worker count.
func NewEnricher(tok Tokenizer, dict *dictionary.Index) *Enricher {
	return &Enricher{
		Tokenizer: tok,
		Dict:      dict,
		Workers:   4,
	}
}

// Report counts the fields Enrich filled in.
type Report struct {
	Sentences int
	Meanings  int
}

// indexedSentence is a sentence with the lower-cased forms of its tokens.
type indexedSentence struct {
	Text  string
	Lower string
	Terms map[string]bool
}

func (s indexedSentence) mentions(word string) bool {
	if strings.ContainsAny(word, " \t") {
		return strings.Contains(s.Lower, word)
	}
	return s.Terms[word]
}

// Enrich updates words in place. A word without a sentence gets the first
// article sentence that mentions it, matched on surface form, base form or
// hiragana reading. A word without a meaning gets its dictionary gloss.
func (e *Enricher) Enrich(ctx context.Context, words []*wordbook.Word, text string) (Report, error) {
	var rep Report

	sentences, err := e.index(ctx, article.SplitSentences(text))
	if err != nil {
		return rep, err
	}
	e.logf("Indexed %d sentences", len(sentences))

	for _, w := range words {
		key := strings.ToLower(strings.TrimSpace(w.Word))
		if key == "" {
			continue
		}
		if w.Sentence == "" {
			for _, s := range sentences {
				if s.mentions(key) {
					w.Sentence = s.Text
					rep.Sentences++
					break
				}
			}
		}
		if w.Meaning == "" && e.Dict != nil {
			if g := e.Dict.Gloss(w.Word, maxSenses); g != "" {
				w.Meaning = g
				rep.Meanings++
			}
		}
	}
	return rep, nil
}

// index tokenizes sentences on the worker pool. The result keeps the input
// order.
func (e *Enricher) index(ctx context.Context, sentences []string) ([]indexedSentence, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	var wp WorkerPoolInterface
	if e.PoolFactory != nil {
		wp = e.PoolFactory(e.Workers, e.Workers*2)
	} else {
		wp = NewWorkerPool(e.Workers, e.Workers*2)
	}

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]indexedSentence, len(sentences))
	var (
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
		cancel()
	}

	wp.Start(jobCtx)
	for i, text := range sentences {
		job := func(ctx context.Context) error {
			tokens, err := e.Tokenizer.Analyze(text)
			if err != nil {
				fail(err)
				return err
			}
			// Each job owns one slot, so no locking is needed.
			results[i] = indexedSentence{Text: text, Lower: strings.ToLower(text), Terms: termsOf(tokens)}
			return nil
		}
		if err := wp.SubmitCtx(jobCtx, job); err != nil {
			fail(err)
			break
		}
	}
	wp.Close()

	if firstErr != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func termsOf(tokens []article.Token) map[string]bool {
	terms := make(map[string]bool, len(tokens)*2)
	for _, t := range tokens {
		if t.PrimaryPOS == "記号" || t.PrimaryPOS == "補助記号" {
			continue
		}
		terms[strings.ToLower(t.Surface)] = true
		if t.BaseForm != "" && t.BaseForm != "*" {
			terms[strings.ToLower(t.BaseForm)] = true
		}
		if t.Reading != "" {
			terms[dictionary.ToHiragana(t.Reading)] = true
		}
	}
	return terms
}

func (e *Enricher) logf(format string, args ...any) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}
