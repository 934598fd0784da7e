package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/book-review-service/internal/model"
)

//go:embed books.json
var seedBooks []byte

// BookRepo is the read-only catalog keyed by ISBN.  It is built once at
// startup and never mutated, so it needs no locking.
type BookRepo struct {
	books map[string]model.Book
	order []string // ISBNs in catalog order
}

// NewBookRepo builds a catalog from books.  Later duplicates of an ISBN
// replace earlier ones; entries with an empty ISBN are skipped.
func NewBookRepo(books []model.Book) *BookRepo {
	r := &BookRepo{books: make(map[string]model.Book, len(books))}
	for _, b := range books {
		b.ISBN = strings.TrimSpace(b.ISBN)
		if b.ISBN == "" {
			continue
		}
		if _, dup := r.books[b.ISBN]; !dup {
			r.order = append(r.order, b.ISBN)
		}
		r.books[b.ISBN] = b
	}
	sort.Slice(r.order, func(i, j int) bool { return isbnLess(r.order[i], r.order[j]) })
	return r
}

// isbnLess orders numeric-looking keys by length first so "2" sorts before "10".
func isbnLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// SeedBooks returns the built-in catalog used when no database is configured.
func SeedBooks() ([]model.Book, error) {
	var books []model.Book
	if err := json.Unmarshal(seedBooks, &books); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return books, nil
}

// LoadBooks reads the whole catalog from the books table.  It is called
// once during startup; the result is handed to NewBookRepo.
func LoadBooks(ctx context.Context, db *sql.DB) ([]model.Book, error) {
	rows, err := db.QueryContext(ctx, "SELECT isbn, author, title FROM books ORDER BY isbn")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ISBN, &b.Author, &b.Title); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Exists reports whether isbn is in the catalog.
func (r *BookRepo) Exists(isbn string) bool {
	_, ok := r.books[isbn]
	return ok
}

// Get returns the book with the given ISBN or ErrBookNotFound.
func (r *BookRepo) Get(isbn string) (model.Book, error) {
	b, ok := r.books[isbn]
	if !ok {
		return model.Book{}, ErrBookNotFound
	}
	return b, nil
}

// All returns every book in catalog order.
func (r *BookRepo) All() []model.Book {
	return r.filter(func(model.Book) bool { return true })
}

// ByAuthor returns books whose author equals author, ignoring case.
func (r *BookRepo) ByAuthor(author string) []model.Book {
	return r.filter(func(b model.Book) bool { return strings.EqualFold(b.Author, author) })
}

// ByTitle returns books whose title equals title, ignoring case.
func (r *BookRepo) ByTitle(title string) []model.Book {
	return r.filter(func(b model.Book) bool { return strings.EqualFold(b.Title, title) })
}

func (r *BookRepo) filter(keep func(model.Book) bool) []model.Book {
	out := make([]model.Book, 0, len(r.order))
	for _, isbn := range r.order {
		if b := r.books[isbn]; keep(b) {
			out = append(out, b)
		}
	}
	return out
}
