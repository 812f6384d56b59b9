package usecase

import (
	"fmt"

	"sentiment/internal/domain"
	"sentiment/internal/port"
)

// VocabReport summarizes an indexed vocabulary.
type VocabReport struct {
	Stats domain.Stats       `json:"stats"`
	Top   []domain.TermCount `json:"top"`
}

// VocabUseCase answers frequency questions about an indexed vocabulary.
type VocabUseCase struct {
	store port.VocabStore
}

// NewVocabUseCase creates a new vocab use case.
func NewVocabUseCase(store port.VocabStore) *VocabUseCase {
	return &VocabUseCase{store: store}
}

// Report returns corpus statistics and the topN most frequent terms.
func (u *VocabUseCase) Report(topN int) (*VocabReport, error) {
	stats, err := u.store.GetStats()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}
	top, err := u.store.TopTerms(topN)
	if err != nil {
		return nil, fmt.Errorf("failed to rank terms: %w", err)
	}
	return &VocabReport{Stats: stats, Top: top}, nil
}

// Lookup returns the corpus frequency of each term, in the order given.
func (u *VocabUseCase) Lookup(terms []string) ([]domain.TermCount, error) {
	counts := make([]domain.TermCount, 0, len(terms))
	for _, term := range terms {
		n, err := u.store.TermCount(term)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %q: %w", term, err)
		}
		counts = append(counts, domain.TermCount{Term: term, Count: n})
	}
	return counts, nil
}
