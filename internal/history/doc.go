// Package history persists one record per pipeline run in a SQLite database
// so `bdmenu runs` can show what was authored, where the image landed and why
// a run failed.
//
// The store uses WAL mode with a busy timeout and retries SQLITE_BUSY with a
// short exponential backoff, because an authoring run and a concurrent
// `runs` listing may touch the database at the same time.
package history
