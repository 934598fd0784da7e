package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/book-review-service/internal/model"
	"github.com/iliyamo/book-review-service/internal/queue"
	"github.com/iliyamo/book-review-service/internal/repository"
)

// Identity resolves a session into the username it is bound to.
type Identity interface {
	Resolve(sess *model.Session) (string, bool)
}

// ReviewStore is the review repository as seen by the gateway.
type ReviewStore interface {
	Get(isbn string) (model.Reviews, error)
	Upsert(isbn, username, text string) (model.Reviews, error)
	Delete(isbn, username string) (model.Reviews, error)
}

// EventPublisher receives a ReviewEvent after every successful mutation.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ReviewEvent) error
}

// ReviewService is the gateway for review reads and writes.  Every
// mutation walks the same steps: resolve the caller, check the ISBN, check
// the payload, then apply.  Reads are public and skip the first step.
type ReviewService struct {
	Identity Identity
	Books    repository.Catalog
	Reviews  ReviewStore
	Events   EventPublisher // optional
	Log      zerolog.Logger
	Now      func() time.Time
}

// Get returns every review of isbn.
func (s *ReviewService) Get(_ context.Context, isbn string) (model.Reviews, error) {
	return s.Reviews.Get(isbn)
}

// Upsert stores the caller's review of isbn, replacing any previous one,
// and returns the book's reviews after the write.
func (s *ReviewService) Upsert(ctx context.Context, sess *model.Session, isbn, text string) (model.Reviews, error) {
	username, ok := s.Identity.Resolve(sess)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !s.Books.Exists(isbn) {
		return nil, repository.ErrBookNotFound
	}
	if strings.TrimSpace(text) == "" {
		return nil, repository.ErrEmptyReview
	}
	reviews, err := s.Reviews.Upsert(isbn, username, text)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ReviewEvent{Action: queue.ActionUpserted, ISBN: isbn, Username: username, Review: text})
	return reviews, nil
}

// Delete removes the caller's review of isbn and returns what remains.
func (s *ReviewService) Delete(ctx context.Context, sess *model.Session, isbn string) (model.Reviews, error) {
	username, ok := s.Identity.Resolve(sess)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !s.Books.Exists(isbn) {
		return nil, repository.ErrBookNotFound
	}
	reviews, err := s.Reviews.Delete(isbn, username)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ReviewEvent{Action: queue.ActionDeleted, ISBN: isbn, Username: username})
	return reviews, nil
}

// publish hands ev to the publisher in the background.  The store lock is
// already released here and the outcome never reaches the caller.
func (s *ReviewService) publish(ctx context.Context, ev queue.ReviewEvent) {
	if s.Events == nil {
		return
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ev.OccurredAt = now().UTC().Format(time.RFC3339)
	go func() {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Events.Publish(pctx, ev); err != nil {
			s.Log.Warn().Err(err).Str("action", ev.Action).Str("isbn", ev.ISBN).Msg("review event not published")
		}
	}()
}
