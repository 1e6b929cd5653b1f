package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/shelf/pkg/books"
)

// BooksToData converts books to table rows in library order.
func BooksToData(list []*books.Book) Data {
	data := Data{
		Headers:      []string{"title", "authors", "rating", "isbn", "pages"},
		Rows:         make([][]string, 0, len(list)),
		RightAligned: []int{2, 4},
	}
	for _, b := range list {
		data.Rows = append(data.Rows, []string{
			b.Title(),
			strings.Join(b.Authors(), ", "),
			strconv.FormatFloat(b.Rating(), 'f', 2, 64),
			b.ISBN(),
			strconv.Itoa(b.Pages()),
		})
	}
	return data
}

// BookSummaries returns the serializable view of each book.
func BookSummaries(list []*books.Book) []books.Summary {
	out := make([]books.Summary, 0, len(list))
	for _, b := range list {
		out = append(out, b.Summary())
	}
	return out
}

// FormatBooks writes the books to w in format.
func FormatBooks(w io.Writer, list []*books.Book, format Format) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatTable, "":
		data = BooksToData(list)
	default:
		data = BookSummaries(list)
	}
	return formatter.Format(w, data)
}
