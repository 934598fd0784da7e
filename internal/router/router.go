package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/book-review-service/internal/handler"
)

// RegisterRoutes registers the liveness probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login.  Neither needs an
// existing session; login creates one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
}

// RegisterPublic registers the catalog browse routes and the public review
// listing.  cache wraps only the catalog routes: their output is fixed for
// the life of the process, while reviews change on every write.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, r *handler.ReviewHandler, cache echo.MiddlewareFunc) {
	e.GET("/", p.ListBooks, cache)
	e.GET("/isbn/:isbn", p.GetByISBN, cache)
	e.GET("/author/:author", p.GetByAuthor, cache)
	e.GET("/title/:title", p.GetByTitle, cache)

	e.GET("/review/:isbn", r.GetReviews)
}

// RegisterReviews registers the review mutations under /auth.  session
// loads the caller's session; the review gateway decides whether it is
// good enough, so requests without one reach the handler and get 401.
func RegisterReviews(e *echo.Echo, r *handler.ReviewHandler, session echo.MiddlewareFunc) {
	g := e.Group("/auth", session)
	g.PUT("/review/:isbn", r.PutReview)
	g.DELETE("/review/:isbn", r.DeleteReview)
}
