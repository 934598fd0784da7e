package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/book-review-service/internal/model"
)

func newSeededBooks(t *testing.T) *BookRepo {
	t.Helper()
	books, err := SeedBooks()
	require.NoError(t, err)
	return NewBookRepo(books)
}

func TestSeedCatalog(t *testing.T) {
	r := newSeededBooks(t)
	all := r.All()
	require.Len(t, all, 10)
	assert.Equal(t, "1", all[0].ISBN)
	assert.Equal(t, "2", all[1].ISBN)
	assert.Equal(t, "10", all[9].ISBN)

	b, err := r.Get("8")
	require.NoError(t, err)
	assert.Equal(t, "Pride and Prejudice", b.Title)

	_, err = r.Get("999")
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, r.Exists("999"))
}

func TestSearchIgnoresCase(t *testing.T) {
	r := newSeededBooks(t)

	byAuthor := r.ByAuthor("jane austen")
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "8", byAuthor[0].ISBN)

	unknown := r.ByAuthor("UNKNOWN")
	assert.Len(t, unknown, 4)

	byTitle := r.ByTitle("THE DIVINE COMEDY")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Dante Alighieri", byTitle[0].Author)

	assert.Empty(t, r.ByTitle("no such title"))
	assert.NotNil(t, r.ByTitle("no such title"))
}

func TestNewBookRepoSkipsBlankAndDeduplicates(t *testing.T) {
	r := NewBookRepo([]model.Book{
		{ISBN: "1", Title: "first"},
		{ISBN: " ", Title: "blank"},
		{ISBN: "1", Title: "second"},
	})
	all := r.All()
	require.Len(t, all, 1)
	assert.Equal(t, "second", all[0].Title)
}

func TestLoadBooksFromDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"isbn", "author", "title"}).
		AddRow("111", "Ursula K. Le Guin", "The Dispossessed").
		AddRow("222", "Italo Calvino", "Invisible Cities")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT isbn, author, title FROM books ORDER BY isbn")).
		WillReturnRows(rows)

	books, err := LoadBooks(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Invisible Cities", books[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadBooksPropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

	_, err = LoadBooks(context.Background(), db)
	assert.ErrorIs(t, err, assert.AnError)
}
