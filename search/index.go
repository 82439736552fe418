// Package search maintains an in-memory full-text index over endpoint
// document summaries, backing the apidoc_search tool. The index is
// rebuilt from the store's listing; a content fingerprint skips rebuilds
// when nothing changed.
package search

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("search index closed")

// DocSummary is the indexed projection of one endpoint document.
type DocSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	FolderPath  string `json:"folderPath"`
	Description string `json:"description"`
}

// Hit is one search result.
type Hit struct {
	ID    string
	Score float64
}

// Index wraps a bleve mem-only index over document summaries. Safe for
// concurrent use.
type Index struct {
	mu          sync.RWMutex
	idx         bleve.Index
	fingerprint string
	closed      bool
}

// NewIndex creates an empty in-memory index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// Rebuild replaces the index contents with the given summaries. When the
// summaries fingerprint to the current contents the rebuild is skipped.
func (i *Index) Rebuild(docs []DocSummary) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return ErrClosed
	}

	fp := computeFingerprint(docs)
	if fp == i.fingerprint {
		return nil
	}

	fresh, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	batch := fresh.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.ID, doc); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("index doc %s: %w", doc.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("apply index batch: %w", err)
	}

	old := i.idx
	i.idx = fresh
	i.fingerprint = fp
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Put indexes or reindexes one summary. The fingerprint is invalidated so
// the next Rebuild runs unconditionally.
func (i *Index) Put(doc DocSummary) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return ErrClosed
	}
	i.fingerprint = ""
	if err := i.idx.Index(doc.ID, doc); err != nil {
		return fmt.Errorf("index doc %s: %w", doc.ID, err)
	}
	return nil
}

// Delete removes one summary by id.
func (i *Index) Delete(id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return ErrClosed
	}
	i.fingerprint = ""
	if err := i.idx.Delete(id); err != nil {
		return fmt.Errorf("delete doc %s: %w", id, err)
	}
	return nil
}

// Search runs a match query over all indexed fields and returns up to
// limit scored hits.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 10
	}

	var req *bleve.SearchRequest
	if query == "" {
		req = bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), limit, 0, false)
	} else {
		req = bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, false)
	}

	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{ID: h.ID, Score: h.Score})
	}
	return hits, nil
}

// Close releases the index. Further calls return ErrClosed.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil
	}
	i.closed = true
	return i.idx.Close()
}
