package port

import "sentiment/internal/domain"

// VocabStore persists per-document term counts and the corpus-wide
// frequency of every term.
type VocabStore interface {
	PutDoc(doc domain.Document, counts map[string]int) error

	GetDoc(id string) (domain.Document, error)

	DeleteDoc(id string) error

	ListDocs() ([]domain.Document, error)

	TermCount(term string) (int, error)

	TopTerms(n int) ([]domain.TermCount, error)

	GetStats() (domain.Stats, error)

	Close() error
}
