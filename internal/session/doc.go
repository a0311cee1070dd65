// Package session implements the account and activity operations of
// MomVerse on top of a storage.Store: registration, login and logout, the
// current-user pointer, and the newest-first feeding log and journal
// collections.
//
// Collections are rewritten in full on every append. The Manager serializes
// its own read-modify-write cycles and relies on Store.Update for atomicity
// against other processes sharing the same store.
package session
