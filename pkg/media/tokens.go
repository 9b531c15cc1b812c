package media

import "strings"

const minTokenLength = 3

// Tokenize lower-cases s, splits it on anything that is not an ASCII letter
// or digit, strips digits from each piece, and drops pieces shorter than
// three characters. "Watch8-Combo" yields ["watch", "combo"].
func Tokenize(s string) []string {
	pieces := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	out := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		stripped := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return -1
			}
			return r
		}, piece)
		if len(stripped) < minTokenLength {
			continue
		}
		out = append(out, stripped)
	}
	return out
}

// TokenSet is the distinct token set of a text.
type TokenSet map[string]struct{}

// NewTokenSet tokenizes text into a set.
func NewTokenSet(text string) TokenSet {
	set := make(TokenSet)
	for _, token := range Tokenize(text) {
		set[token] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Score counts the distinct tokens of id that appear in the set.
func (s TokenSet) Score(id string) int {
	if len(s) == 0 {
		return 0
	}
	score := 0
	for token := range NewTokenSet(id) {
		if s.Has(token) {
			score++
		}
	}
	return score
}

// Score is the unweighted overlap between the tokens of id and corpus.
func Score(id, corpus string) int {
	return NewTokenSet(corpus).Score(id)
}
