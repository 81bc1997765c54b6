// Package store persists court availability snapshots in a local SQLite
// database, keeping a history of scraped records for offline querying.
package store
