package memstore

import (
	"fmt"
	"maps"
	"sync"

	"sentiment/internal/domain"
)

// MemoryStore is an in-memory port.VocabStore.
type MemoryStore struct {
	mu       sync.RWMutex
	docs     map[string]domain.Document
	docTerms map[string]map[string]int
	terms    map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:     make(map[string]domain.Document),
		docTerms: make(map[string]map[string]int),
		terms:    make(map[string]int),
	}
}

func (s *MemoryStore) PutDoc(doc domain.Document, counts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(doc.ID)
	s.docs[doc.ID] = doc
	s.docTerms[doc.ID] = maps.Clone(counts)
	for term, n := range counts {
		s.terms[term] += n
	}
	return nil
}

func (s *MemoryStore) GetDoc(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return doc, nil
}

func (s *MemoryStore) DeleteDoc(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
	return nil
}

func (s *MemoryStore) deleteLocked(id string) {
	for term, n := range s.docTerms[id] {
		s.terms[term] -= n
		if s.terms[term] <= 0 {
			delete(s.terms, term)
		}
	}
	delete(s.docTerms, id)
	delete(s.docs, id)
}

func (s *MemoryStore) ListDocs() ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *MemoryStore) TermCount(term string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.terms[term], nil
}

func (s *MemoryStore) TopTerms(n int) ([]domain.TermCount, error) {
	s.mu.RLock()
	terms := make([]domain.TermCount, 0, len(s.terms))
	for term, count := range s.terms {
		terms = append(terms, domain.TermCount{Term: term, Count: count})
	}
	s.mu.RUnlock()
	return domain.RankTerms(terms, n), nil
}

func (s *MemoryStore) GetStats() (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := domain.Stats{
		TotalDocs:   len(s.docs),
		UniqueTerms: len(s.terms),
	}
	for _, doc := range s.docs {
		stats.TotalTokens += doc.Tokens
	}
	return stats, nil
}

// Clear drops every document and term.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.docs)
	clear(s.docTerms)
	clear(s.terms)
}

func (s *MemoryStore) Close() error {
	return nil
}
