package commands

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// SearchCommand finds books whose title contains a single search term.
type SearchCommand struct {
	term   string
	parsed bool
}

// Type implements Command.
func (c *SearchCommand) Type() Type { return TypeSearch }

// Term returns the parsed search term.
func (c *SearchCommand) Term() string { return c.term }

// Parse accepts one non-blank word.
func (c *SearchCommand) Parse(argument string) error {
	term := strings.TrimSpace(argument)
	switch {
	case term == "":
		return reject(TypeSearch, argument, "a search term is required")
	case strings.ContainsFunc(term, unicode.IsSpace):
		return reject(TypeSearch, argument, "search term must be a single word")
	}

	c.term = term
	c.parsed = true
	return nil
}

// Execute prints every title matching the term, ignoring case. Titles are
// also matched with their whitespace removed, so "titlea" finds "Title A".
func (c *SearchCommand) Execute(lib Library) *Result {
	mustExecutable(TypeSearch, c.parsed, lib)

	fold := cases.Fold()
	needle := fold.String(c.term)

	res := &Result{}
	for _, b := range lib.All() {
		title := fold.String(b.Title())
		if strings.Contains(title, needle) || strings.Contains(stripSpace(title), needle) {
			res.Println(b.Title())
		}
	}

	if len(res.Lines) == 0 {
		res.Println("No hits found for search term: " + c.term)
	}
	return res
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
