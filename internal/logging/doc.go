// Package logging builds slog loggers for the CLI and the extraction pipeline.
//
// Console output is the default; JSON output and a file sink under the
// configured log directory are available through config. Attribute aliases and
// the standardized field names keep log keys consistent across packages.
package logging
