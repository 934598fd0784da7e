// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public catalog API. These routes allow
// unauthenticated users to browse books by ISBN, author or title.

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/repository"
)

// BookCatalog is the read-only catalog as used by the browse handlers.
type BookCatalog interface {
	All() []model.Book
	Get(isbn string) (model.Book, error)
	ByAuthor(author string) []model.Book
	ByTitle(title string) []model.Book
}

// PublicHandler serves the catalog to unauthenticated users.
type PublicHandler struct {
	Books BookCatalog
}

// ListBooks returns the whole catalog keyed by ISBN.
func (h *PublicHandler) ListBooks(c echo.Context) error {
	books := h.Books.All()
	out := make(map[string]model.Book, len(books))
	for _, b := range books {
		out[b.ISBN] = b
	}
	return c.JSON(http.StatusOK, out)
}

// GetByISBN returns one book or 404.
func (h *PublicHandler) GetByISBN(c echo.Context) error {
	b, err := h.Books.Get(c.Param("isbn"))
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal error"})
	}
	return c.JSON(http.StatusOK, b)
}

// GetByAuthor lists books by an exact, case-insensitive author match.
// An unknown author yields an empty list, not 404.
func (h *PublicHandler) GetByAuthor(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Books.ByAuthor(c.Param("author")))
}

// GetByTitle lists books by an exact, case-insensitive title match.
func (h *PublicHandler) GetByTitle(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Books.ByTitle(c.Param("title")))
}
