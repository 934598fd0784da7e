package model

// User represents a registered account in the user directory.  Usernames
// are unique and never change after creation; records are never deleted.
//
// Fields:
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password chosen at registration.
type User struct {
	Username     string // unique, immutable
	PasswordHash string // bcrypt hash
}
