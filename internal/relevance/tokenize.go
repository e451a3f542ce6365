// tokenize.go - Word extraction and n-gram generation
package relevance

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[a-z]+`)

// englishStopWords is the stop list applied before vectorization.
var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "were": {}, "which": {}, "will": {},
	"with": {}, "this": {}, "these": {}, "those": {}, "all": {}, "any": {},
	"each": {}, "when": {}, "where": {}, "who": {}, "how": {}, "not": {},
	"no": {}, "can": {}, "do": {}, "does": {}, "their": {}, "them": {},
	"they": {}, "then": {}, "than": {}, "there": {}, "here": {}, "but": {},
	"if": {}, "into": {}, "only": {}, "other": {}, "some": {}, "such": {},
	"what": {}, "you": {}, "your": {}, "we": {}, "our": {}, "he": {},
	"she": {}, "his": {}, "her": {}, "i": {}, "me": {}, "my": {}, "so": {},
	"up": {}, "out": {}, "about": {}, "over": {}, "under": {}, "more": {},
	"most": {}, "been": {}, "being": {}, "had": {}, "should": {},
	"would": {}, "could": {}, "may": {}, "might": {}, "must": {},
}

// extractWords returns all lowercase alphabetic runs in s.
func extractWords(s string) []string {
	return wordPattern.FindAllString(strings.ToLower(s), -1)
}

// tokenize lowercases, extracts words, and drops stop words.
func tokenize(s string) []string {
	words := extractWords(s)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := englishStopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// terms produces unigram and bigram terms from a token sequence.
func terms(tokens []string) []string {
	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}
