package search

import (
	"errors"
	"testing"
)

func sampleDocs() []DocSummary {
	return []DocSummary{
		{ID: "1", Title: "Create User", Method: "POST", Path: "/users", FolderPath: "API/Users", Description: "creates a user account"},
		{ID: "2", Title: "List Orders", Method: "GET", Path: "/orders", FolderPath: "API/Orders", Description: "lists placed orders"},
		{ID: "3", Title: "Delete User", Method: "DELETE", Path: "/users/{id}", FolderPath: "API/Users", Description: "removes a user account"},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	t.Cleanup(func() {
		_ = idx.Close()
	})
	if err := idx.Rebuild(sampleDocs()); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	return idx
}

func TestSearch(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search("user", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected hits for 'user'")
	}
	for _, h := range hits {
		if h.ID == "2" {
			t.Errorf("orders doc should not match 'user': %v", hits)
		}
	}
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search("", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 3 {
		t.Errorf("expected all 3 docs, got %d", len(hits))
	}
}

func TestSearchLimit(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search("", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Errorf("expected 2 hits, got %d", len(hits))
	}
}

func TestRebuildSkipsUnchanged(t *testing.T) {
	idx := newTestIndex(t)
	before := idx.fingerprint

	if err := idx.Rebuild(sampleDocs()); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if idx.fingerprint != before {
		t.Error("identical content must not change the fingerprint")
	}
}

func TestRebuildReplacesContent(t *testing.T) {
	idx := newTestIndex(t)

	if err := idx.Rebuild([]DocSummary{
		{ID: "9", Title: "Health Check", Method: "GET", Path: "/healthz", Description: "liveness probe"},
	}); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	hits, err := idx.Search("", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "9" {
		t.Errorf("expected only the new doc, got %v", hits)
	}
}

func TestPutAndDelete(t *testing.T) {
	idx := newTestIndex(t)

	if err := idx.Put(DocSummary{ID: "4", Title: "Patch User", Method: "PATCH", Path: "/users/{id}", Description: "partial update"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := idx.Delete("2"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	hits, err := idx.Search("", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 3 {
		t.Errorf("expected 3 docs after put+delete, got %d", len(hits))
	}
}

func TestClosedIndex(t *testing.T) {
	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := idx.Search("x", 1); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := idx.Put(DocSummary{ID: "1"}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestFingerprintOrderSensitive(t *testing.T) {
	docs := sampleDocs()
	a := computeFingerprint(docs)

	reversed := []DocSummary{docs[2], docs[1], docs[0]}
	if computeFingerprint(reversed) == a {
		t.Error("fingerprint should reflect listing order")
	}
	if computeFingerprint(docs) != a {
		t.Error("fingerprint must be stable for identical input")
	}
}
