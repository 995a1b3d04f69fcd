// Package classify maps raw asset short names to the catalog taxonomy.
//
// Every function here is pure: the same input always yields the same category,
// unit type, subcategory, display name, and tag set, across calls and across
// process runs. The heuristic tables (known units, noise tokens, withheld
// content, abbreviations) live in the embedded vocab.toml.
package classify
