package commands

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GroupMode selects the grouping key.
type GroupMode string

// Group modes.
const (
	GroupByTitle  GroupMode = "TITLE"
	GroupByAuthor GroupMode = "AUTHOR"
)

// nonLetterHeader is the bucket header for titles that do not start with a letter.
const nonLetterHeader = "[0-9]"

// nonLetterKey sorts before every letter.
const nonLetterKey rune = -1

// GroupCommand prints book titles grouped by first letter or by author.
type GroupCommand struct {
	mode   GroupMode
	parsed bool
}

// Type implements Command.
func (c *GroupCommand) Type() Type { return TypeGroup }

// Mode returns the parsed grouping mode.
func (c *GroupCommand) Mode() GroupMode { return c.mode }

// Parse accepts exactly TITLE or AUTHOR, with no surrounding whitespace.
func (c *GroupCommand) Parse(argument string) error {
	switch mode := GroupMode(argument); mode {
	case GroupByTitle, GroupByAuthor:
		c.mode = mode
	default:
		return reject(TypeGroup, argument, "expected TITLE or AUTHOR")
	}
	c.parsed = true
	return nil
}

// bucket is a named group of titles.
type bucket struct {
	header string
	titles []string
}

// Execute prints the grouped titles.
func (c *GroupCommand) Execute(lib Library) *Result {
	mustExecutable(TypeGroup, c.parsed, lib)

	res := &Result{}
	if lib.Len() == 0 {
		res.Println(emptyLibraryMessage)
		return res
	}

	var buckets []bucket
	switch c.mode {
	case GroupByAuthor:
		buckets = groupByAuthor(lib)
	default:
		buckets = groupByTitle(lib)
	}

	res.Println("Grouped data by " + string(c.mode))
	for _, b := range buckets {
		res.Println("## " + b.header)
		for _, title := range b.titles {
			res.Println("\t" + title)
		}
	}
	return res
}

// groupByTitle buckets titles by their upper-cased first letter. Titles
// starting with anything else share one bucket, listed first.
func groupByTitle(lib Library) []bucket {
	groups := make(map[rune][]string)
	for _, b := range lib.All() {
		title := b.Title()
		groups[titleKey(title)] = append(groups[titleKey(title)], title)
	}

	keys := make([]rune, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buckets := make([]bucket, 0, len(keys))
	for _, k := range keys {
		header := nonLetterHeader
		if k != nonLetterKey {
			header = string(k)
		}
		buckets = append(buckets, bucket{header: header, titles: groups[k]})
	}
	return buckets
}

func titleKey(title string) rune {
	r, _ := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return nonLetterKey
	}
	return unicode.ToUpper(r)
}

// groupByAuthor lists each title under every one of its authors, authors
// in lexicographic order.
func groupByAuthor(lib Library) []bucket {
	groups := make(map[string][]string)
	for _, b := range lib.All() {
		for _, author := range b.Authors() {
			groups[author] = append(groups[author], b.Title())
		}
	}

	authors := make([]string, 0, len(groups))
	for a := range groups {
		authors = append(authors, a)
	}
	slices.SortFunc(authors, strings.Compare)

	buckets := make([]bucket, 0, len(authors))
	for _, a := range authors {
		buckets = append(buckets, bucket{header: a, titles: groups[a]})
	}
	return buckets
}
