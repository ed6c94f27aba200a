package services

import "strings"

// queryStopwords are conversational filler dropped before embedding a query.
var queryStopwords = map[string]bool{
	"find": true, "the": true, "file": true, "that": true, "i": true,
	"downloaded": true, "download": true, "yesterday": true, "today": true,
	"please": true, "can": true, "you": true, "my": true, "a": true,
	"an": true, "is": true, "was": true, "me": true,
}

// NormalizeQuery removes filler words from a query.
// If nothing but filler remains, the raw query is returned unchanged so that
// a non-empty query never becomes empty.
func NormalizeQuery(raw string) string {
	words := strings.Fields(raw)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !queryStopwords[strings.ToLower(w)] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return raw
	}
	return strings.Join(kept, " ")
}
