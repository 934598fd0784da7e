package model

// Book is one catalog entry.  The catalog is loaded once at startup and is
// read-only afterwards, so Book values are shared freely between requests.
type Book struct {
	ISBN   string `json:"isbn"`
	Author string `json:"author"`
	Title  string `json:"title"`
}
