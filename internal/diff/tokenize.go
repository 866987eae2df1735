package diff

import "regexp"

// boundaryRE matches one token boundary: a run of whitespace or a single punctuation mark. The en dash, em dash and hyphen are separate boundaries.
var boundaryRE = regexp.MustCompile(`[\s\p{Z}\x{0B}\x{FEFF}]+|[.,!?;:"()–—\-\[\]{}]`)

// Tokenize splits text into words, whitespace runs and punctuation marks, in order. Every boundary match is its own token and the text between matches
// is a word token. Zero-length fragments are never emitted, so Tokenize("") returns an empty slice.
//
// Tokenize is lossless: strings.Join(Tokenize(text), "") == text.
func Tokenize(text string) []string {
	if text == "" {
		return []string{}
	}
	locs := boundaryRE.FindAllStringIndex(text, -1)
	tokens := make([]string, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			tokens = append(tokens, text[prev:loc[0]])
		}
		if loc[1] > loc[0] {
			tokens = append(tokens, text[loc[0]:loc[1]])
		}
		prev = loc[1]
	}
	if prev < len(text) {
		tokens = append(tokens, text[prev:])
	}
	return tokens
}

// isWord reports whether tok is a word token (neither whitespace nor punctuation).
func isWord(tok string) bool {
	if tok == "" {
		return false
	}
	loc := boundaryRE.FindStringIndex(tok)
	return loc == nil
}
