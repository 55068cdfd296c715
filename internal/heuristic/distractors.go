package heuristic

import (
	"math/rand"
	"regexp"
)

const distractorCount = 3

// fallbackDistractors pads the option list when the article has too few proper nouns
var fallbackDistractors = []string{"India", "England", "Australia", "2011", "2018", "Delhi"}

var properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// ProperNouns returns the unique capitalised words of text in order of first appearance.
func ProperNouns(text string) []string {
	matches := properNounPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Distractors picks exactly three wrong options for answer. Candidates are sampled at
// random; the fixed fallback set fills any remaining slots.
func Distractors(answer string, candidates []string, rng *rand.Rand) []string {
	pool := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != answer {
			pool = append(pool, c)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := make([]string, 0, distractorCount)
	used := map[string]struct{}{answer: {}}
	for _, c := range pool {
		if len(out) == distractorCount {
			break
		}
		if _, ok := used[c]; ok {
			continue
		}
		used[c] = struct{}{}
		out = append(out, c)
	}

	if len(out) < distractorCount {
		padding := append([]string(nil), fallbackDistractors...)
		rng.Shuffle(len(padding), func(i, j int) { padding[i], padding[j] = padding[j], padding[i] })
		for _, c := range padding {
			if len(out) == distractorCount {
				break
			}
			if _, ok := used[c]; ok {
				continue
			}
			used[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
