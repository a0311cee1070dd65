// Package models defines the records MomVerse persists: users, feeding logs
// and journal entries, plus the chat message shape used by the assistant.
// JSON field names are part of the stored layout.
package models

// User is a registered account. Email is unique, compared case-sensitively.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	BabyName string `json:"babyName,omitempty"`
	BabyDOB  string `json:"babyDob,omitempty"`
}

// StoredUser is the users-namespace record: the User plus the credential
// material derived from the password.
type StoredUser struct {
	User
	PasswordSalt     []byte `json:"passwordSalt,omitempty"`
	PasswordVerifier []byte `json:"passwordVerifier,omitempty"`
}
