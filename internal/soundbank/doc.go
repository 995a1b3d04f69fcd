// Package soundbank reads the game's chunked binary archives. An archive is
// a sequence of tagged, length-prefixed chunks; the index chunk lists the
// embedded audio blobs and the data chunk holds their bytes. The package
// produces blob descriptors and copies blob bytes out verbatim, nothing more.
package soundbank
