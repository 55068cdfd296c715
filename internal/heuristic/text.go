package heuristic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxWords bounds how much article text is kept after cleaning
	MaxWords = 2000
	// SummaryLength is the number of characters kept in a fallback summary
	SummaryLength = 400

	minSentenceWords = 8
	maxSentenceWords = 25
)

// CleanText collapses whitespace runs to single spaces and keeps the first MaxWords words.
func CleanText(text string) string {
	words := strings.Fields(text)
	if len(words) > MaxWords {
		words = words[:MaxWords]
	}
	return strings.Join(words, " ")
}

// Summarize returns the first SummaryLength characters of text, followed by "..." when cut.
func Summarize(text string) string {
	if utf8.RuneCountInString(text) <= SummaryLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:SummaryLength]) + "..."
}

// SplitSentences splits cleaned text after '.', '!' or '?' followed by spaces and keeps
// the sentences with more than 8 and fewer than 25 words.
func SplitSentences(cleaned string) []string {
	var raw []string
	start := 0
	for i := 0; i < len(cleaned); i++ {
		if !isTerminal(cleaned[i]) || i+1 >= len(cleaned) || cleaned[i+1] != ' ' {
			continue
		}
		raw = append(raw, cleaned[start:i+1])
		j := i + 1
		for j < len(cleaned) && cleaned[j] == ' ' {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(cleaned) {
		raw = append(raw, cleaned[start:])
	}

	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		n := len(strings.Fields(s))
		if n > minSentenceWords && n < maxSentenceWords {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// KeywordCandidates returns the capitalised or numeric words of a sentence with
// surrounding punctuation removed.
func KeywordCandidates(sentence string) []string {
	var out []string
	for _, w := range strings.Fields(sentence) {
		w = strings.TrimFunc(w, isEdgeRune)
		if w == "" {
			continue
		}
		first, _ := utf8.DecodeRuneInString(w)
		if unicode.IsUpper(first) || isDigits(w) {
			out = append(out, w)
		}
	}
	return out
}

func isEdgeRune(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
