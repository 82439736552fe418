package search

import (
	"crypto/sha256"
	"encoding/hex"
)

// computeFingerprint generates a stable hash of the summary slice. The
// fingerprint changes when document content changes, letting Rebuild skip
// the work when the store listing is unchanged.
func computeFingerprint(docs []DocSummary) string {
	h := sha256.New()

	for _, doc := range docs {
		h.Write([]byte(doc.ID))
		h.Write([]byte{0}) // separator

		h.Write([]byte(doc.Title))
		h.Write([]byte{0})
		h.Write([]byte(doc.Method))
		h.Write([]byte{0})
		h.Write([]byte(doc.Path))
		h.Write([]byte{0})
		h.Write([]byte(doc.FolderPath))
		h.Write([]byte{0})
		h.Write([]byte(doc.Description))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}
