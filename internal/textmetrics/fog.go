// Package textmetrics computes readability statistics over cleaned article
// text. The audit records the Gunning Fog grade so the report's reading-level
// tiers stay a pure function of the stored record.
package textmetrics

import (
	"math"
	"strings"
	"unicode"
)

// GunningFog returns the Gunning Fog index for the given text, rounded to
// one decimal place: 0.4 * (words/sentence + 100 * complexWords/words).
// Empty text scores 0.
func GunningFog(text string) float64 {
	words := Words(text)
	if len(words) == 0 {
		return 0
	}
	sentences := SentenceCount(text)
	if sentences == 0 {
		sentences = 1
	}

	complex := 0
	for _, w := range words {
		if Syllables(w) >= 3 {
			complex++
		}
	}

	fog := 0.4 * (float64(len(words))/float64(sentences) + 100*float64(complex)/float64(len(words)))
	return math.Round(fog*10) / 10
}

// Words splits text into words, stripping surrounding punctuation. Tokens
// with no letters (numbers, dashes) are dropped.
func Words(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w == "" {
			continue
		}
		hasLetter := false
		for _, r := range w {
			if unicode.IsLetter(r) {
				hasLetter = true
				break
			}
		}
		if hasLetter {
			words = append(words, w)
		}
	}
	return words
}

// SentenceCount counts sentence-ending punctuation runs. A run of ".!?" is
// one boundary, so ellipses and "?!" don't inflate the count.
func SentenceCount(text string) int {
	count := 0
	inRun := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inRun {
				count++
				inRun = true
			}
		default:
			inRun = false
		}
	}
	return count
}

// Syllables estimates the syllable count of a single word by counting vowel
// groups, dropping a trailing silent e, with a floor of one.
func Syllables(word string) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
