package memstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sentiment/internal/domain"
	"sentiment/internal/port"
)

var _ port.VocabStore = (*MemoryStore)(nil)

func TestMemoryStore_Counts(t *testing.T) {
	st := NewMemoryStore()

	require.NoError(t, st.PutDoc(domain.Document{ID: "d1", Tokens: 3}, map[string]int{"good": 2, "bad": 1}))
	require.NoError(t, st.PutDoc(domain.Document{ID: "d2", Tokens: 1}, map[string]int{"good": 1}))

	n, err := st.TermCount("good")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, st.PutDoc(domain.Document{ID: "d1", Tokens: 1}, map[string]int{"fine": 1}))
	top, err := st.TopTerms(0)
	require.NoError(t, err)
	assert.Equal(t, []domain.TermCount{{Term: "fine", Count: 1}, {Term: "good", Count: 1}}, top)

	stats, err := st.GetStats()
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{TotalDocs: 2, TotalTokens: 2, UniqueTerms: 2}, stats)
}

func TestMemoryStore_DeleteAndClear(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.PutDoc(domain.Document{ID: "d1", Tokens: 1}, map[string]int{"aa": 1}))

	require.NoError(t, st.DeleteDoc("d1"))
	_, err := st.GetDoc("d1")
	assert.Error(t, err)

	require.NoError(t, st.PutDoc(domain.Document{ID: "d2", Tokens: 1}, map[string]int{"bb": 1}))
	st.Clear()
	docs, err := st.ListDocs()
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	st := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_ = st.PutDoc(domain.Document{ID: id, Tokens: 1}, map[string]int{"shared": 1})
		}(string(rune('a' + i)))
	}
	wg.Wait()

	n, err := st.TermCount("shared")
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}
