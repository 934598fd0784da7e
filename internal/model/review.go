package model

// Reviews maps a username to that user's review text for one book.  A user
// has at most one entry per book; writing again replaces the text.
type Reviews map[string]string
