package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/book-review-service/internal/middleware"
	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/repository"
	"github.com/iliyamo/book-review-service/internal/service"
)

// ReviewGateway is the review service as used by the HTTP layer.
type ReviewGateway interface {
	Get(ctx context.Context, isbn string) (model.Reviews, error)
	Upsert(ctx context.Context, sess *model.Session, isbn, text string) (model.Reviews, error)
	Delete(ctx context.Context, sess *model.Session, isbn string) (model.Reviews, error)
}

// ReviewHandler serves the public review listing and the session-guarded
// review mutations.
type ReviewHandler struct {
	Reviews ReviewGateway
	Log     zerolog.Logger
}

// GetReviews: public.  A book without reviews yields a message instead of
// an empty object.
func (h *ReviewHandler) GetReviews(c echo.Context) error {
	reviews, err := h.Reviews.Get(c.Request().Context(), c.Param("isbn"))
	if err != nil {
		return h.fail(c, err)
	}
	if len(reviews) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"message": "No reviews found for this book"})
	}
	return c.JSON(http.StatusOK, reviews)
}

// PutReview: add or replace the caller's review; text comes from ?review=.
func (h *ReviewHandler) PutReview(c echo.Context) error {
	reviews, err := h.Reviews.Upsert(c.Request().Context(), middleware.CurrentSession(c), c.Param("isbn"), c.QueryParam("review"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Review added/updated successfully",
		"reviews": reviews,
	})
}

// DeleteReview: remove the caller's own review.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	reviews, err := h.Reviews.Delete(c.Request().Context(), middleware.CurrentSession(c), c.Param("isbn"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Review deleted successfully",
		"reviews": reviews,
	})
}

// fail maps gateway errors onto status codes and messages.
func (h *ReviewHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "User not logged in"})
	case errors.Is(err, repository.ErrBookNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
	case errors.Is(err, repository.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No review by this user for this book"})
	case errors.Is(err, repository.ErrEmptyReview):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Review query parameter is required (e.g., ?review=Great)"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	case errors.Is(err, repository.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Bad request"})
	}
	h.Log.Error().Err(err).Str("isbn", c.Param("isbn")).Msg("review request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal error"})
}
