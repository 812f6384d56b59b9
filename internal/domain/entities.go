package domain

import (
	"cmp"
	"slices"
	"time"
)

type Document struct {
	ID      string
	Path    string
	ModTime time.Time
	Tokens  int
}

type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalDocs   int `json:"total_docs"`
	TotalTokens int `json:"total_tokens"`
	UniqueTerms int `json:"unique_terms"`
}

// RankTerms sorts terms by descending count, ties broken alphabetically, and
// keeps the first n. n <= 0 keeps every term.
func RankTerms(terms []TermCount, n int) []TermCount {
	slices.SortFunc(terms, func(a, b TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if n > 0 && len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
