// Package services defines the shared error taxonomy for extraction work and
// hosts clients for the external conversion tools.
//
// Errors raised by the soundbank parser, the conversion pipeline, and the
// catalog are tagged with one of the sentinel markers here so the orchestrator
// can distinguish skippable per-entry failures from run-fatal conditions.
package services
