// Package text computes reading statistics over rendered chapter output:
// word and sentence counts and an estimated reading time.
package text

import (
	"strings"
	"time"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
)

// wordsPerMinute is the commonly used silent-reading average used for the
// reading time estimate.
const wordsPerMinute = 230

// Splitter segments plain text into sentences. The tokenizer ships with
// English training data; for other languages sentence counts degrade to
// naive splitting but word counts stay exact.
type Splitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSplitter creates a sentence splitter. A nil logger is allowed.
func NewSplitter(log *zap.Logger) *Splitter {
	if log == nil {
		log = zap.NewNop()
	}
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		// The training data is compiled in; failing to load it means a
		// broken build, but statistics are cosmetic so degrade quietly.
		log.Warn("Unable to load sentence tokenizer data", zap.Error(err))
		return &Splitter{}
	}
	return &Splitter{tokenizer: tokenizer}
}

// Stats summarizes one chapter's rendered text.
type Stats struct {
	Words       int
	Sentences   int
	Paragraphs  int
	ReadingTime time.Duration
}

// Measure computes statistics for a block of plain text. Every non-blank
// line counts as a paragraph, the way render.PlainText emits one line per
// block.
func (s *Splitter) Measure(text string) Stats {
	var st Stats

	st.Words = countWords(text)
	st.Sentences = s.countSentences(text)
	st.Paragraphs = countParagraphs(text)
	st.ReadingTime = time.Duration(float64(st.Words) / wordsPerMinute * float64(time.Minute)).Round(time.Second)
	return st
}

func (s *Splitter) countSentences(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	if s == nil || s.tokenizer == nil {
		return naiveSentenceCount(text)
	}
	n := 0
	for _, sent := range s.tokenizer.Tokenize(text) {
		if strings.TrimSpace(sent.Text) != "" {
			n++
		}
	}
	return n
}

func countWords(text string) int {
	n := 0
	inWord := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if !inWord {
				n++
				inWord = true
			}
		} else if unicode.IsSpace(r) {
			inWord = false
		}
	}
	return n
}

func countParagraphs(text string) int {
	n := 0
	for para := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(para) != "" {
			n++
		}
	}
	return n
}

func naiveSentenceCount(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}
