// Package books holds the catalog record type and the in-memory collection
// a shelf session operates on.
package books

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/shelf/pkg/errors"
)

// Rating and page bounds enforced by New.
const (
	MinRating = 0.0
	MaxRating = 5.0
	MinPages  = 0
)

// Book is an immutable catalog entry. The zero value is not a valid Book;
// use New.
type Book struct {
	title   string
	authors []string
	rating  float64
	isbn    string
	pages   int
}

// Summary is the exported, serializable view of a Book.
type Summary struct {
	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`
	Rating  float64  `json:"rating" yaml:"rating"`
	ISBN    string   `json:"isbn" yaml:"isbn"`
	Pages   int      `json:"pages" yaml:"pages"`
}

// New validates all fields and returns a Book. Any violation returns a
// *errors.ValidationError for the first offending field and no Book.
func New(title string, authors []string, rating float64, isbn string, pages int) (*Book, error) {
	if err := validate(title, authors, rating, isbn, pages); err != nil {
		return nil, err
	}

	return &Book{
		title:   title,
		authors: slices.Clone(authors),
		rating:  rating,
		isbn:    isbn,
		pages:   pages,
	}, nil
}

func validate(title string, authors []string, rating float64, isbn string, pages int) error {
	if isBlank(title) {
		return errors.NewValidationError("title", title, "must not be blank")
	}
	if len(authors) == 0 {
		return errors.NewValidationError("authors", authors, "at least one author is required")
	}
	for i, a := range authors {
		if isBlank(a) {
			return errors.NewValidationError("authors", authors, fmt.Sprintf("author %d must not be blank", i+1))
		}
	}
	// The negated form also rejects NaN.
	if !(rating >= MinRating && rating <= MaxRating) {
		return errors.NewValidationError("rating", rating,
			fmt.Sprintf("must be between %.2f and %.2f inclusive, but is: %.2f", MinRating, MaxRating, rating))
	}
	if isBlank(isbn) {
		return errors.NewValidationError("isbn", isbn, "must not be blank")
	}
	if pages < MinPages {
		return errors.NewValidationError("pages", pages,
			fmt.Sprintf("must be equal or greater than %d, but is: %d", MinPages, pages))
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Title returns the book title.
func (b *Book) Title() string { return b.title }

// Authors returns a copy of the ordered author list.
func (b *Book) Authors() []string { return slices.Clone(b.authors) }

// HasAuthor reports whether name exactly matches one of the authors.
func (b *Book) HasAuthor(name string) bool {
	return slices.Contains(b.authors, name)
}

// Rating returns the rating in [0.0, 5.0].
func (b *Book) Rating() float64 { return b.rating }

// ISBN returns the opaque identifier.
func (b *Book) ISBN() string { return b.isbn }

// Pages returns the page count.
func (b *Book) Pages() int { return b.pages }

// Equal reports structural equality over all five fields.
func (b *Book) Equal(other *Book) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.title == other.title &&
		slices.Equal(b.authors, other.authors) &&
		b.rating == other.rating &&
		b.isbn == other.isbn &&
		b.pages == other.pages
}

// Key returns a string that is equal for two books iff they are Equal.
// It is suitable as a map key.
func (b *Book) Key() string {
	parts := make([]string, 0, len(b.authors)+4)
	parts = append(parts, strconv.Quote(b.title))
	for _, a := range b.authors {
		parts = append(parts, strconv.Quote(a))
	}
	parts = append(parts,
		strconv.FormatFloat(b.rating, 'g', -1, 64),
		strconv.Quote(b.isbn),
		strconv.Itoa(b.pages),
	)
	return strings.Join(parts, "|")
}

// String renders the long listing form.
func (b *Book) String() string {
	var sb strings.Builder
	sb.WriteString(b.title)
	sb.WriteString("\nby ")
	sb.WriteString(strings.Join(b.authors, ", "))
	fmt.Fprintf(&sb, "\nRating: %.2f", b.rating)
	sb.WriteString("\nISBN: ")
	sb.WriteString(b.isbn)
	fmt.Fprintf(&sb, "\n%d pages", b.pages)
	return sb.String()
}

// Summary returns the serializable view of the book.
func (b *Book) Summary() Summary {
	return Summary{
		Title:   b.title,
		Authors: b.Authors(),
		Rating:  b.rating,
		ISBN:    b.isbn,
		Pages:   b.pages,
	}
}
