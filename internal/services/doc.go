// Package services defines shared utilities consumed by the pipeline stages
// and the external tool wrappers.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and job names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into the validation / tool-missing / process-failure / parse taxonomy.
//
// Use these helpers when wiring new job logic so failure reporting stays
// uniform across the pipeline and the CLI.
package services
