package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"sentiment/internal/domain"
	"sentiment/internal/port"
)

// ProgressFunc is called after each file is processed.
type ProgressFunc func(processed, total int, currentFile string)

// IndexUseCase builds the term-frequency vocabulary of a directory tree.
type IndexUseCase struct {
	store     port.VocabStore
	walker    port.FileWalker
	opener    port.FileOpener
	tokenizer port.Tokenizer
	logger    *slog.Logger
}

// NewIndexUseCase creates a new index use case.
func NewIndexUseCase(
	store port.VocabStore,
	walker port.FileWalker,
	opener port.FileOpener,
	tokenizer port.Tokenizer,
	logger *slog.Logger,
) *IndexUseCase {
	return &IndexUseCase{
		store:     store,
		walker:    walker,
		opener:    opener,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// IndexResult contains the results of an indexing operation.
type IndexResult struct {
	FilesIndexed int
	FilesSkipped int
	FilesDeleted int
	TokensSeen   int
	Errors       []string
}

// Index indexes files under root. Files whose modification time has not
// advanced since the last run are skipped, and documents for files that no
// longer exist are removed.
func (u *IndexUseCase) Index(root string, progress ProgressFunc) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}

	existingMap := make(map[string]domain.Document, len(existingDocs))
	for _, doc := range existingDocs {
		existingMap[doc.Path] = doc
	}

	seenPaths := make(map[string]bool, len(files))

	for i, file := range files {
		seenPaths[file.Path] = true

		if existing, ok := existingMap[file.Path]; ok && existing.ModTime.Unix() >= file.ModTime {
			result.FilesSkipped++
		} else if n, err := u.indexFile(file); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to index %s: %v", file.Path, err))
			u.logger.Warn("index failed", "path", file.Path, "error", err)
		} else {
			result.FilesIndexed++
			result.TokensSeen += n
			u.logger.Debug("indexed file", "path", file.Path, "tokens", n)
		}

		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	for path, doc := range existingMap {
		if seenPaths[path] {
			continue
		}
		if err := u.store.DeleteDoc(doc.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
			continue
		}
		result.FilesDeleted++
		u.logger.Debug("removed deleted file", "path", path)
	}

	return result, nil
}

// indexFile tokenizes one file and replaces its stored term counts.
func (u *IndexUseCase) indexFile(file port.FileInfo) (int, error) {
	rc, err := u.opener.Open(file.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	counts := make(map[string]int)
	total := 0
	err = u.tokenizer.Stream(rc, func(token string) {
		counts[token]++
		total++
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	doc := domain.Document{
		ID:      generateDocID(file.Path),
		Path:    file.Path,
		ModTime: time.Unix(file.ModTime, 0),
		Tokens:  total,
	}
	if err := u.store.PutDoc(doc, counts); err != nil {
		return 0, fmt.Errorf("failed to store document: %w", err)
	}

	return total, nil
}

// generateDocID creates a unique ID for a document based on its path.
func generateDocID(path string) string {
	hash := sha256.Sum256([]byte(path))
	return hex.EncodeToString(hash[:8])
}
