package curation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/access"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
)

type countingCatalog struct {
	book   *entities.Book
	reads  int
	writes int
}

func (c *countingCatalog) ListBooks(filter books.ListFilter) ([]entities.Book, error) {
	c.reads++
	if c.book == nil {
		return nil, nil
	}
	return []entities.Book{*c.book}, nil
}

func (c *countingCatalog) GetBookByID(id string, includeDisabled bool) (*entities.Book, error) {
	c.reads++
	if c.book == nil || c.book.ID != id {
		return nil, books.ErrBookNotFound
	}
	copied := *c.book
	return &copied, nil
}

func (c *countingCatalog) CreateBook(book *entities.Book) error {
	c.writes++
	book.ID = "created-id"
	c.book = book
	return nil
}

func (c *countingCatalog) UpdateBook(book *entities.Book) error {
	c.writes++
	if c.book == nil || c.book.ID != book.ID {
		return books.ErrBookNotFound
	}
	c.book = book
	return nil
}

func (c *countingCatalog) SetEnabled(id string, enabled bool) error {
	c.writes++
	if c.book == nil || c.book.ID != id {
		return books.ErrBookNotFound
	}
	c.book.Enabled = enabled
	return nil
}

func (c *countingCatalog) DeleteBook(id string) error {
	c.writes++
	if c.book == nil || c.book.ID != id {
		return books.ErrBookNotFound
	}
	c.book = nil
	return nil
}

func validInput() BookInput {
	return BookInput{
		Title:    "Some Book",
		Author:   "Some Author",
		Category: "fiction",
		BookURL:  "https://files.example.com/some-book.epub",
	}
}

func TestForbiddenBeforeAnyStoreAccess(t *testing.T) {
	// Every operation must reject non-admin callers before reading or
	// writing anything.
	for _, role := range []access.Role{access.RoleAnonymous, access.RoleUser} {
		catalog := &countingCatalog{}
		service := NewService(catalog, nil)

		_, err := service.ListAll(role)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = service.GetBook(role, "b1")
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = service.CreateBook(role, 1, validInput())
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = service.UpdateBook(role, 1, "b1", validInput())
		assert.ErrorIs(t, err, ErrForbidden)

		assert.ErrorIs(t, service.SetEnabled(role, 1, "b1", false), ErrForbidden)
		assert.ErrorIs(t, service.DeleteBook(role, 1, "b1"), ErrForbidden)

		assert.Zero(t, catalog.reads, "role %s", role)
		assert.Zero(t, catalog.writes, "role %s", role)
	}
}

func TestCreateBook(t *testing.T) {
	t.Run("creates an enabled book from valid input", func(t *testing.T) {
		catalog := &countingCatalog{}
		service := NewService(catalog, nil)

		book, err := service.CreateBook(access.RoleAdmin, 1, validInput())
		require.NoError(t, err)
		assert.True(t, book.Enabled)
		assert.Equal(t, "Some Book", book.Title)
	})

	t.Run("trims input fields", func(t *testing.T) {
		catalog := &countingCatalog{}
		service := NewService(catalog, nil)

		in := validInput()
		in.Title = "  Padded Title  "
		book, err := service.CreateBook(access.RoleAdmin, 1, in)
		require.NoError(t, err)
		assert.Equal(t, "Padded Title", book.Title)
	})

	t.Run("validation failures never reach the store", func(t *testing.T) {
		cases := []struct {
			mutate func(*BookInput)
			want   error
		}{
			{func(in *BookInput) { in.Title = " " }, ErrTitleRequired},
			{func(in *BookInput) { in.Author = "" }, ErrAuthorRequired},
			{func(in *BookInput) { in.Category = "" }, ErrCategoryRequired},
			{func(in *BookInput) { in.BookURL = "" }, ErrBookURLRequired},
			{func(in *BookInput) { in.BookURL = "not a url" }, ErrBookURLInvalid},
			{func(in *BookInput) { in.BookURL = "ftp://example.com/f.epub" }, ErrBookURLInvalid},
			{func(in *BookInput) { in.CoverURL = "::bad::" }, ErrCoverURLInvalid},
		}

		for _, tc := range cases {
			catalog := &countingCatalog{}
			service := NewService(catalog, nil)

			in := validInput()
			tc.mutate(&in)

			_, err := service.CreateBook(access.RoleAdmin, 1, in)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, catalog.writes)
		}
	})
}

func TestUpdateBook(t *testing.T) {
	t.Run("unknown book", func(t *testing.T) {
		service := NewService(&countingCatalog{}, nil)

		_, err := service.UpdateBook(access.RoleAdmin, 1, "missing", validInput())
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("replaces editable fields", func(t *testing.T) {
		catalog := &countingCatalog{}
		service := NewService(catalog, nil)

		created, err := service.CreateBook(access.RoleAdmin, 1, validInput())
		require.NoError(t, err)

		in := validInput()
		in.Title = "Renamed"
		updated, err := service.UpdateBook(access.RoleAdmin, 1, created.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})
}

func TestSetEnabledAndDelete(t *testing.T) {
	t.Run("disable then delete", func(t *testing.T) {
		catalog := &countingCatalog{}
		service := NewService(catalog, nil)

		created, err := service.CreateBook(access.RoleAdmin, 1, validInput())
		require.NoError(t, err)

		require.NoError(t, service.SetEnabled(access.RoleAdmin, 1, created.ID, false))
		assert.False(t, catalog.book.Enabled)

		require.NoError(t, service.DeleteBook(access.RoleAdmin, 1, created.ID))
		assert.Nil(t, catalog.book)
	})

	t.Run("unknown book", func(t *testing.T) {
		service := NewService(&countingCatalog{}, nil)

		assert.ErrorIs(t, service.SetEnabled(access.RoleAdmin, 1, "missing", true), ErrBookNotFound)
		assert.ErrorIs(t, service.DeleteBook(access.RoleAdmin, 1, "missing"), ErrBookNotFound)
	})
}

type recordingInvalidator struct {
	invalidated []string
}

func (r *recordingInvalidator) InvalidateCover(bookID string) error {
	r.invalidated = append(r.invalidated, bookID)
	return nil
}

func TestCoverInvalidation(t *testing.T) {
	t.Run("update and delete drop the cached cover", func(t *testing.T) {
		catalog := &countingCatalog{}
		service := NewService(catalog, nil)
		invalidator := &recordingInvalidator{}
		service.SetCoverInvalidator(invalidator)

		created, err := service.CreateBook(access.RoleAdmin, 1, validInput())
		require.NoError(t, err)

		_, err = service.UpdateBook(access.RoleAdmin, 1, created.ID, validInput())
		require.NoError(t, err)
		require.NoError(t, service.DeleteBook(access.RoleAdmin, 1, created.ID))

		assert.Equal(t, []string{created.ID, created.ID}, invalidator.invalidated)
	})
}
