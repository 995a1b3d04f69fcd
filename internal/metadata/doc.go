// Package metadata resolves numeric asset ids to authored names. The game
// ships generated XML listings next to its archives; this package reads the
// soundbank-scoped included-files listing, the project-scoped streamed-files
// listing, and the optional event definitions, tolerating unknown elements
// and defaulted attributes throughout.
package metadata
