package books

import "slices"

// Collection is the ordered, mutable sequence of books owned by a session.
// It is not safe for concurrent use; a session runs one command at a time.
type Collection struct {
	books []*Book
}

// CollectionOption defines a function that configures a Collection.
type CollectionOption func(*Collection)

// WithBooks seeds the collection with books, in order. Nil entries are dropped.
func WithBooks(books ...*Book) CollectionOption {
	return func(c *Collection) {
		c.Append(books...)
	}
}

// NewCollection creates an empty collection with optional configuration.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// All returns the books in collection order. The returned slice is a copy;
// the books themselves are immutable and shared.
func (c *Collection) All() []*Book {
	return slices.Clone(c.books)
}

// Append adds books to the end of the collection. Nil entries are dropped.
func (c *Collection) Append(books ...*Book) {
	for _, b := range books {
		if b != nil {
			c.books = append(c.books, b)
		}
	}
}

// RemoveWhere deletes every book matching pred, preserving the order of the
// rest, and returns how many were removed. pred is called once per book in
// collection order.
func (c *Collection) RemoveWhere(pred func(*Book) bool) int {
	before := len(c.books)
	c.books = slices.DeleteFunc(c.books, pred)
	return before - len(c.books)
}

// Len returns the number of books.
func (c *Collection) Len() int {
	return len(c.books)
}
