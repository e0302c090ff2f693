package content

import "regexp"

// PronounScan reports first-person pronoun usage outside quoted speech.
// Pronouns inside quotes are deliberate (customer quotes, testimonials) and
// don't count against the house style.
type PronounScan struct {
	Count int
	Found []string
	Flag  bool
}

var pronounRe = regexp.MustCompile(`(?i)\b(i|me|my|mine|myself)\b`)

// quotePairs maps opening to closing quote runes, covering straight and
// curly variants.
var quotePairs = map[rune]rune{
	'"': '"',
	'“': '”',
	'‘': '’',
}

// ScanPronouns counts first-person personal pronouns that appear outside
// quoted regions. An unterminated quote extends to the end of the text.
func ScanPronouns(text string) PronounScan {
	runes := []rune(text)
	type span struct{ start, end int }
	var quoted []span

	pos := 0
	for pos < len(runes) {
		openIdx := -1
		var closer rune
		for i := pos; i < len(runes); i++ {
			if c, ok := quotePairs[runes[i]]; ok {
				openIdx = i
				closer = c
				break
			}
		}
		if openIdx == -1 {
			break
		}
		endIdx := len(runes) - 1
		for i := openIdx + 1; i < len(runes); i++ {
			if runes[i] == closer {
				endIdx = i
				break
			}
		}
		quoted = append(quoted, span{openIdx, endIdx})
		pos = endIdx + 1
	}

	inQuotes := func(runeIdx int) bool {
		for _, q := range quoted {
			if q.start <= runeIdx && runeIdx <= q.end {
				return true
			}
		}
		return false
	}

	// Regexp indices are byte offsets; build a byte->rune index map once.
	byteToRune := make(map[int]int, len(runes))
	b := 0
	for i := range text {
		byteToRune[i] = b
		b++
	}

	var scan PronounScan
	for _, m := range pronounRe.FindAllStringIndex(text, -1) {
		if inQuotes(byteToRune[m[0]]) {
			continue
		}
		scan.Count++
		scan.Found = append(scan.Found, text[m[0]:m[1]])
	}
	scan.Flag = scan.Count > 0
	return scan
}
