package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/japaniel/vocabull/pkg/article"
	"github.com/japaniel/vocabull/pkg/dictionary"
	"github.com/japaniel/vocabull/pkg/enrich"
	"github.com/japaniel/vocabull/pkg/wordbook"
)

func main() {
	bookFlag := flag.String("book", "", "Path to the word book to enrich")
	articleFlag := flag.String("article", "", "Local HTML or text file to take example sentences from")
	dictFlag := flag.String("dict", "", "Path to a JMdict-Simplified JSON file used to fill empty meanings")
	outFlag := flag.String("out", "", "Output word book path (default stdout)")
	workersFlag := flag.Int("workers", 4, "Number of sentences tokenized in parallel")
	flag.Parse()

	if *bookFlag == "" || (*articleFlag == "" && *dictFlag == "") {
		log.Fatal("Please provide -book and at least one of -article or -dict")
	}

	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	f, err := os.Open(*bookFlag)
	if err != nil {
		log.Fatalf("Failed to open word book: %v", err)
	}
	words, err := wordbook.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse word book: %v", err)
	}
	log.Printf("Loaded %d words from %s", len(words), *bookFlag)

	var dict *dictionary.Index
	if *dictFlag != "" {
		start := time.Now()
		entries, err := dictionary.LoadJMdictSimplified(*dictFlag)
		if err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		dict = dictionary.NewIndex(entries)
		log.Printf("Dictionary loaded (%d entries) in %v", len(entries), time.Since(start))
	}

	var text string
	if *articleFlag != "" {
		art, err := article.ExtractFile(*articleFlag)
		if err != nil {
			log.Fatalf("Failed to extract article: %v", err)
		}
		log.Printf("Article %q: %d chars", art.Title, len(art.Body))
		text = art.Body
	}

	analyzer, err := article.NewAnalyzer()
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}
	enricher := enrich.NewEnricher(analyzer, dict)
	enricher.Workers = *workersFlag
	enricher.Logger = log.Default()

	rep, err := enricher.Enrich(ctx, words, text)
	if err != nil {
		log.Fatalf("Enrichment failed: %v", err)
	}

	var out io.Writer = os.Stdout
	if *outFlag != "" {
		of, err := os.Create(*outFlag)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer of.Close()
		out = of
	}
	if err := wordbook.Write(out, words); err != nil {
		log.Fatalf("Failed to write word book: %v", err)
	}
	log.Printf("Filled %d sentences and %d meanings.", rep.Sentences, rep.Meanings)
	fmt.Fprintln(os.Stderr, "Done.")
}
