// Package storage is the persistence layer for MomVerse.
//
// # Overview
//
// A Store maps a handful of fixed namespaces (users, the session pointer,
// feeding logs, journal entries) to opaque serialized values. The store
// knows nothing about record shapes; the generic codec helpers in codec.go
// turn values into typed collections and back, and decide what to do with
// data that cannot be read.
//
// # Backends
//
//   - MemoryStore: in-process, for tests and throwaway sessions
//   - SQLStore: SQLite or PostgreSQL over database/sql, schema
//     managed by goose migrations (internal/migrations)
//   - RedisStore: one string key per namespace under a prefix
//
// Every backend reports its own failures as ErrStorageUnavailable.
//
// # Read-modify-write
//
// Update gives each backend a way to make the full-collection
// read-modify-write cycle atomic: a transaction for the SQL backends,
// WATCH/MULTI for Redis and a mutex for memory.
//
// Typical Usage
//
//	st, _ := storage.Open(ctx, "file:momverse.db", storage.Options{})
//	logs, _ := storage.ReadCollection[models.FeedLog](ctx, st, storage.NamespaceFeedingLogs, log)
package storage
