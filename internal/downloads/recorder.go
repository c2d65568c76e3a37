// Package downloads implements the download recorder: every granted read or
// download access is appended to the audit trail before the content location
// is revealed to the caller.
package downloads

import (
	"fmt"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
)

// ErrBookNotFound mirrors the catalog sentinel so callers only need this
// package's errors.
var ErrBookNotFound = books.ErrBookNotFound

// CatalogStore is the catalog lookup needed by the recorder.
type CatalogStore interface {
	GetBookByID(id string, includeDisabled bool) (*entities.Book, error)
}

// RecordStore appends download records.
type RecordStore interface {
	Create(record *entities.DownloadRecord) error
}

// Recorder validates a download request and appends one immutable record per
// granted access.
type Recorder struct {
	catalog CatalogStore
	records RecordStore
}

// NewRecorder creates a download recorder.
func NewRecorder(catalog CatalogStore, records RecordStore) *Recorder {
	return &Recorder{catalog: catalog, records: records}
}

// Record appends a download record for (userID, bookID) and returns it along
// with the book's content URL.
//
// Anonymous callers are rejected by the access gate before reaching this
// point; the check here is defense in depth. The content URL is returned only
// after the record insert succeeds, so a failed write never results in an
// unaudited access grant. Concurrent calls for the same pair each produce
// their own record.
func (r *Recorder) Record(userID uint, bookID string) (*entities.DownloadRecord, string, error) {
	if userID == access.AnonymousUserID {
		return nil, "", access.ErrUnauthenticated
	}

	// Disabled books look exactly like missing ones to readers.
	book, err := r.catalog.GetBookByID(bookID, false)
	if err != nil {
		return nil, "", err
	}

	record := &entities.DownloadRecord{
		UserID: userID,
		BookID: book.ID,
	}
	if err := r.records.Create(record); err != nil {
		return nil, "", fmt.Errorf("failed to record download: %w", err)
	}

	return record, book.BookURL, nil
}
