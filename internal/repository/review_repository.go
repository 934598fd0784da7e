package repository

import (
	"strings"
	"sync"

	"github.com/iliyamo/book-review-service/internal/model"
)

// Catalog is the part of the book catalog the review store depends on.
type Catalog interface {
	Exists(isbn string) bool
}

// ReviewRepo owns every review: one text per (isbn, username).  A single
// RWMutex guards the whole map, and each read-modify-write runs entirely
// under the write lock, so concurrent writes to one key never interleave.
type ReviewRepo struct {
	mu      sync.RWMutex
	catalog Catalog
	reviews map[string]model.Reviews // isbn -> username -> text
}

// NewReviewRepo returns an empty store that accepts reviews only for
// ISBNs known to catalog.
func NewReviewRepo(catalog Catalog) *ReviewRepo {
	return &ReviewRepo{catalog: catalog, reviews: make(map[string]model.Reviews)}
}

// Get returns a copy of the reviews for isbn.  A book without reviews yields
// an empty, non-nil map; an unknown ISBN yields ErrBookNotFound.
func (r *ReviewRepo) Get(isbn string) (model.Reviews, error) {
	if !r.catalog.Exists(isbn) {
		return nil, ErrBookNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clone(r.reviews[isbn]), nil
}

// Upsert sets username's review of isbn to text, replacing any earlier
// text, and returns a copy of the book's reviews after the write.
func (r *ReviewRepo) Upsert(isbn, username, text string) (model.Reviews, error) {
	if !r.catalog.Exists(isbn) {
		return nil, ErrBookNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyReview
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.reviews[isbn]
	if !ok {
		book = make(model.Reviews)
		r.reviews[isbn] = book
	}
	book[username] = text
	return clone(book), nil
}

// Delete removes username's review of isbn and returns a copy of what
// remains.  It fails with ErrBookNotFound for an unknown ISBN and with
// ErrReviewNotFound when the user has no review there; the store is left
// untouched in both cases.
func (r *ReviewRepo) Delete(isbn, username string) (model.Reviews, error) {
	if !r.catalog.Exists(isbn) {
		return nil, ErrBookNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	book := r.reviews[isbn]
	if _, ok := book[username]; !ok {
		return nil, ErrReviewNotFound
	}
	delete(book, username)
	return clone(book), nil
}

func clone(in model.Reviews) model.Reviews {
	out := make(model.Reviews, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
