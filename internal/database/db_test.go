package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/book-review-service/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.Config{DBUser: "books", DBPass: "pw", DBHost: "db", DBPort: "3306", DBName: "bookshop"})
	assert.Contains(t, dsn, "books:pw@tcp(db:3306)/bookshop?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}
