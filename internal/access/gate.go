package access

import "github.com/openshelf/openshelf/internal/entities"

// Decision is the set of actions a caller may perform on a single book.
type Decision struct {
	CanView     bool `json:"can_view"`
	CanRead     bool `json:"can_read"`
	CanDownload bool `json:"can_download"`
}

// Authorize decides what a caller with the given role may do with a book.
//
// A disabled book is invisible to everyone except admins; the public catalog
// filters disabled books out upstream, so the admin bypass here only serves
// curation call sites. Metadata is viewable by every role once the book has
// passed the enabled check; reading and downloading require authentication.
//
// Authorize is a pure function and must be re-evaluated on every request.
func Authorize(role Role, book *entities.Book) Decision {
	if book == nil {
		return Decision{}
	}
	if !book.Enabled && role != RoleAdmin {
		return Decision{}
	}

	d := Decision{CanView: true}
	if role.Authenticated() {
		d.CanRead = true
		d.CanDownload = true
	}
	return d
}
