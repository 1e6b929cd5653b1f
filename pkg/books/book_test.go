package books_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelf/pkg/books"
	"github.com/agentstation/shelf/pkg/errors"
)

func mustBook(t *testing.T, title string, authors []string, rating float64, isbn string, pages int) *books.Book {
	t.Helper()
	b, err := books.New(title, authors, rating, isbn, pages)
	require.NoError(t, err)
	return b
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		authors []string
		rating  float64
		isbn    string
		pages   int
		field   string
	}{
		{name: "valid", title: "Dune", authors: []string{"Frank Herbert"}, rating: 4.5, isbn: "111", pages: 412},
		{name: "rating lower bound", title: "A", authors: []string{"X"}, rating: 0, isbn: "1", pages: 0},
		{name: "rating upper bound", title: "A", authors: []string{"X"}, rating: 5, isbn: "1", pages: 1},
		{name: "blank title", title: "  ", authors: []string{"X"}, rating: 1, isbn: "1", pages: 1, field: "title"},
		{name: "empty title", title: "", authors: []string{"X"}, rating: 1, isbn: "1", pages: 1, field: "title"},
		{name: "no authors", title: "A", authors: nil, rating: 1, isbn: "1", pages: 1, field: "authors"},
		{name: "blank author", title: "A", authors: []string{"X", " "}, rating: 1, isbn: "1", pages: 1, field: "authors"},
		{name: "rating too low", title: "A", authors: []string{"X"}, rating: -0.01, isbn: "1", pages: 1, field: "rating"},
		{name: "rating too high", title: "A", authors: []string{"X"}, rating: 5.01, isbn: "1", pages: 1, field: "rating"},
		{name: "rating NaN", title: "A", authors: []string{"X"}, rating: math.NaN(), isbn: "1", pages: 1, field: "rating"},
		{name: "blank isbn", title: "A", authors: []string{"X"}, rating: 1, isbn: "", pages: 1, field: "isbn"},
		{name: "negative pages", title: "A", authors: []string{"X"}, rating: 1, isbn: "1", pages: -5, field: "pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := books.New(tt.title, tt.authors, tt.rating, tt.isbn, tt.pages)
			if tt.field == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.title, b.Title())
				assert.Equal(t, tt.authors, b.Authors())
				return
			}
			require.Error(t, err)
			assert.Nil(t, b)
			assert.True(t, errors.IsValidationError(err))
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBookImmutable(t *testing.T) {
	authors := []string{"Author X", "Author Y"}
	b := mustBook(t, "Title A", authors, 4.5, "111", 200)

	authors[0] = "changed"
	assert.Equal(t, []string{"Author X", "Author Y"}, b.Authors())

	got := b.Authors()
	got[1] = "changed"
	assert.Equal(t, []string{"Author X", "Author Y"}, b.Authors())
}

func TestBookString(t *testing.T) {
	b := mustBook(t, "Title A", []string{"Author X", "Author Y"}, 4.5, "111", 200)
	want := "Title A\nby Author X, Author Y\nRating: 4.50\nISBN: 111\n200 pages"
	assert.Equal(t, want, b.String())
}

func TestBookEqual(t *testing.T) {
	a := mustBook(t, "T", []string{"X", "Y"}, 3, "1", 10)
	same := mustBook(t, "T", []string{"X", "Y"}, 3, "1", 10)
	swapped := mustBook(t, "T", []string{"Y", "X"}, 3, "1", 10)
	otherPages := mustBook(t, "T", []string{"X", "Y"}, 3, "1", 11)

	assert.True(t, a.Equal(same))
	assert.Equal(t, a.Key(), same.Key())
	assert.False(t, a.Equal(swapped), "authors compare as an ordered sequence")
	assert.NotEqual(t, a.Key(), swapped.Key())
	assert.False(t, a.Equal(otherPages))
	assert.False(t, a.Equal(nil))

	set := map[string]*books.Book{a.Key(): a}
	_, ok := set[same.Key()]
	assert.True(t, ok)
}

func TestBookHasAuthor(t *testing.T) {
	b := mustBook(t, "T", []string{"Author X", "Author Y"}, 3, "1", 10)
	assert.True(t, b.HasAuthor("Author X"))
	assert.False(t, b.HasAuthor("author x"))
	assert.False(t, b.HasAuthor("Author"))
}

func TestBookSummary(t *testing.T) {
	b := mustBook(t, "T", []string{"X"}, 2.25, "978", 99)
	assert.Equal(t, books.Summary{Title: "T", Authors: []string{"X"}, Rating: 2.25, ISBN: "978", Pages: 99}, b.Summary())
}
