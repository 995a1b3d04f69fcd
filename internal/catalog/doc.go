// Package catalog persists extracted sounds and music tracks in SQLite,
// with an FTS5 shadow index for prefix search, favorites, and one-shot data
// migrations tracked through a key-value metadata table.
package catalog
