// Package extract orchestrates an end-to-end extraction run: parse metadata
// documents, walk the soundbank archives, then for each embedded asset
// resolve, filter, extract, classify, convert, and catalog it, with an
// optional second pass over loose streamed music. One run at a time;
// progress is polled, cancellation is cooperative.
package extract
