package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"sentiment/internal/domain"
)

var (
	bucketDocs     = []byte("docs")
	bucketDocTerms = []byte("doc_terms")
	bucketTerms    = []byte("terms")
	bucketMeta     = []byte("meta")
)

// BoltStore is a port.VocabStore backed by a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDocs, bucketDocTerms, bucketTerms, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type docMeta struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
	Tokens  int    `json:"tokens"`
}

// PutDoc stores doc and its term counts, replacing any previous version of
// the same document, and adjusts the corpus-wide term frequencies.
func (s *BoltStore) PutDoc(doc domain.Document, counts map[string]int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := deleteDoc(tx, doc.ID); err != nil {
			return err
		}

		meta, err := json.Marshal(docMeta{
			Path:    doc.Path,
			ModTime: doc.ModTime.Unix(),
			Tokens:  doc.Tokens,
		})
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketDocs).Put([]byte(doc.ID), meta); err != nil {
			return err
		}

		countsData, err := json.Marshal(counts)
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketDocTerms).Put([]byte(doc.ID), countsData); err != nil {
			return err
		}

		terms := tx.Bucket(bucketTerms)
		for term, n := range counts {
			if err := addTerm(terms, term, n); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) GetDoc(id string) (domain.Document, error) {
	var doc domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		var err error
		doc, err = decodeDoc(id, data)
		return err
	})
	return doc, err
}

// DeleteDoc removes a document and subtracts its term counts. Deleting an
// unknown document is not an error.
func (s *BoltStore) DeleteDoc(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return deleteDoc(tx, id)
	})
}

func (s *BoltStore) ListDocs() ([]domain.Document, error) {
	var docs []domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			doc, err := decodeDoc(string(k), v)
			if err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) TermCount(term string) (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = decodeCount(tx.Bucket(bucketTerms).Get([]byte(term)))
		return nil
	})
	return n, err
}

// TopTerms returns the n most frequent terms, ties broken alphabetically.
// n <= 0 returns every term.
func (s *BoltStore) TopTerms(n int) ([]domain.TermCount, error) {
	var terms []domain.TermCount
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTerms).ForEach(func(k, v []byte) error {
			terms = append(terms, domain.TermCount{Term: string(k), Count: decodeCount(v)})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return domain.RankTerms(terms, n), nil
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketDocs).ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			stats.TotalDocs++
			stats.TotalTokens += meta.Tokens
			return nil
		}); err != nil {
			return err
		}
		stats.UniqueTerms = tx.Bucket(bucketTerms).Stats().KeyN
		return nil
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func deleteDoc(tx *bbolt.Tx, id string) error {
	key := []byte(id)
	docTerms := tx.Bucket(bucketDocTerms)

	if data := docTerms.Get(key); data != nil {
		var counts map[string]int
		if err := json.Unmarshal(data, &counts); err != nil {
			return fmt.Errorf("corrupt term counts for %s: %w", id, err)
		}
		terms := tx.Bucket(bucketTerms)
		for term, n := range counts {
			if err := addTerm(terms, term, -n); err != nil {
				return err
			}
		}
		if err := docTerms.Delete(key); err != nil {
			return err
		}
	}

	return tx.Bucket(bucketDocs).Delete(key)
}

// addTerm adds delta to the frequency of term, dropping it when it reaches zero.
func addTerm(b *bbolt.Bucket, term string, delta int) error {
	key := []byte(term)
	n := decodeCount(b.Get(key)) + delta
	if n <= 0 {
		return b.Delete(key)
	}
	return b.Put(key, encodeCount(n))
}

func encodeCount(n int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func decodeCount(data []byte) int {
	if len(data) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(data))
}

func decodeDoc(id string, data []byte) (domain.Document, error) {
	var meta docMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:      id,
		Path:    meta.Path,
		ModTime: time.Unix(meta.ModTime, 0),
		Tokens:  meta.Tokens,
	}, nil
}
