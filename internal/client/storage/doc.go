// Package storage persists the console's session slots (access token,
// cached profile, and the legacy slots written by older consoles).
//
// # Overview
//
// Store is a small key/value contract with three implementations:
//
//   - SQLiteStore  — default; a local SQLite file migrated with goose
//   - RedisStore   — a hash per namespace, for consoles sharing one session
//   - MemoryStore  — process-local map, used by tests and "-store memory"
//
// Get returns (nil, nil) for a missing key on every backend. SetMany writes
// several slots at once and is atomic on SQLite and Redis.
//
// Typical Usage
//
//	st, err := storage.Open(ctx, storage.Options{Driver: "sqlite", DSN: path})
//	_ = st.SetMany(ctx, map[string][]byte{"accessToken": tok, "userProfile": p})
//	v, _ := st.Get(ctx, "accessToken")
//	_ = st.Delete(ctx, common.SessionKeys...)
package storage
