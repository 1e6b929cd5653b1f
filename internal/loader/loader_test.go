package loader_test

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelf/internal/loader"
	"github.com/agentstation/shelf/pkg/errors"
	"github.com/agentstation/shelf/pkg/logging"
)

const header = "title,authors,rating,isbn,pages"

func writeFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func newLoader(t *testing.T, opts ...loader.Option) (*loader.FileLoader, *logging.TestLogger) {
	t.Helper()
	tl := logging.NewTestLogger(t)
	return loader.New(append([]loader.Option{loader.WithLogger(tl.Logger)}, opts...)...), tl
}

func TestLoadAndParse(t *testing.T) {
	path := writeFile(t,
		header,
		"Title A,Author X-Author Y,4.5,111,200",
		"Title B,Author Z,3.0,222,150",
	)

	l, _ := newLoader(t)
	assert.False(t, l.ContentLoaded())
	require.NoError(t, l.LoadFileContent(path))
	assert.True(t, l.ContentLoaded())

	res, err := l.ParseFileContent()
	require.NoError(t, err)
	require.Len(t, res.Books, 2)
	assert.Empty(t, res.Rejected)

	a := res.Books[0]
	assert.Equal(t, "Title A", a.Title())
	assert.Equal(t, []string{"Author X", "Author Y"}, a.Authors())
	assert.Equal(t, 4.5, a.Rating())
	assert.Equal(t, "111", a.ISBN())
	assert.Equal(t, 200, a.Pages())
	assert.Equal(t, "Title B", res.Books[1].Title())
}

func TestParseSkipsInvalidRows(t *testing.T) {
	path := writeFile(t,
		header,
		"Good One,Ann,4.0,1,10",
		`,"", -1, , -5`,
		"Bad Rating,Ann,five,2,10",
		"Out Of Range,Ann,7.5,3,10",
		"Bad Pages,Ann,1.0,4,many",
		"Negative Pages,Ann,1.0,5,-1",
		"Too,Few",
		"Blank Author,Ann-,1.0,6,10",
		"",
		"Good Two,Bob, 2.5 ,7, 20",
	)

	l, tl := newLoader(t)
	require.NoError(t, l.LoadFileContent(path))
	res, err := l.ParseFileContent()
	require.NoError(t, err)

	titles := make([]string, 0, len(res.Books))
	for _, b := range res.Books {
		titles = append(titles, b.Title())
		assert.GreaterOrEqual(t, b.Rating(), 0.0)
		assert.LessOrEqual(t, b.Rating(), 5.0)
		assert.GreaterOrEqual(t, b.Pages(), 0)
	}
	assert.Equal(t, []string{"Good One", "Good Two"}, titles)
	require.Len(t, res.Rejected, 7)

	first := res.Rejected[0]
	assert.Equal(t, path, first.File)
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, "csv", first.Format)

	columns := make([]string, 0, len(res.Rejected))
	for _, r := range res.Rejected {
		columns = append(columns, r.Column)
	}
	assert.Equal(t, []string{"title", "rating", "rating", "pages", "pages", "", "authors"}, columns)

	tl.AssertContains(t, "Skipping invalid row")
}

func TestParseWithoutLoad(t *testing.T) {
	l, tl := newLoader(t)
	res, err := l.ParseFileContent()
	require.ErrorIs(t, err, errors.ErrNoContent)
	require.NotNil(t, res)
	assert.Empty(t, res.Books)
	tl.AssertContains(t, "No content loaded")
}

func TestParseHeaderOnlyAndEmptyFile(t *testing.T) {
	for name, lines := range map[string][]string{
		"header only": {header},
		"empty":       {},
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books.csv")
			require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))

			l, _ := newLoader(t)
			require.NoError(t, l.LoadFileContent(path))
			res, err := l.ParseFileContent()
			require.NoError(t, err)
			assert.Empty(t, res.Books)
			assert.Empty(t, res.Rejected)
		})
	}
}

func TestLoadFailureKeepsPreviousContent(t *testing.T) {
	path := writeFile(t, header, "Kept,Ann,4.0,1,10")

	l, _ := newLoader(t)
	require.NoError(t, l.LoadFileContent(path))

	err := l.LoadFileContent(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.True(t, l.ContentLoaded())
	res, err := l.ParseFileContent()
	require.NoError(t, err)
	require.Len(t, res.Books, 1)
	assert.Equal(t, "Kept", res.Books[0].Title())
}

func TestLoadFailureWithoutPreviousContent(t *testing.T) {
	l, _ := newLoader(t)
	require.Error(t, l.LoadFileContent(filepath.Join(t.TempDir(), "missing.csv")))
	assert.False(t, l.ContentLoaded())
}

func TestCRLFLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\r\nWin,Ann,1.0,9,10\r\n"), 0o644))

	l, _ := newLoader(t)
	require.NoError(t, l.LoadFileContent(path))
	res, err := l.ParseFileContent()
	require.NoError(t, err)
	require.Len(t, res.Books, 1)
	assert.Equal(t, 10, res.Books[0].Pages())
}

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

type failingReader struct{ closed bool }

func (r *failingReader) Read([]byte) (int, error) { return 0, fs.ErrPermission }
func (r *failingReader) Close() error            { r.closed = true; return nil }

func TestFileHandleReleased(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rc := &trackingReader{Reader: strings.NewReader(header + "\nA,B,1,2,3\n")}
		l, _ := newLoader(t, loader.WithOpener(func(string) (io.ReadCloser, error) { return rc, nil }))
		require.NoError(t, l.LoadFileContent("mem.csv"))
		assert.True(t, rc.closed)
	})

	t.Run("read error", func(t *testing.T) {
		rc := &failingReader{}
		l, _ := newLoader(t, loader.WithOpener(func(string) (io.ReadCloser, error) { return rc, nil }))
		err := l.LoadFileContent("mem.csv")
		require.ErrorIs(t, err, fs.ErrPermission)
		assert.True(t, rc.closed)
		assert.False(t, l.ContentLoaded())
	})
}

func TestEmbeddedDelimitersAreNotEscaped(t *testing.T) {
	// A comma inside the title shifts every following field.
	path := writeFile(t, header, "Hello, World,Ann,4.0,1,10")

	l, _ := newLoader(t)
	require.NoError(t, l.LoadFileContent(path))
	res, err := l.ParseFileContent()
	require.NoError(t, err)
	assert.Empty(t, res.Books)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "rating", res.Rejected[0].Column)
}

func TestColumnString(t *testing.T) {
	assert.Equal(t, "title", loader.ColumnTitle.String())
	assert.Equal(t, "authors", loader.ColumnAuthors.String())
	assert.Equal(t, "rating", loader.ColumnRating.String())
	assert.Equal(t, "isbn", loader.ColumnISBN.String())
	assert.Equal(t, "pages", loader.ColumnPages.String())
	assert.Equal(t, "column(9)", loader.Column(9).String())
}
