// Package preflight runs readiness checks before an authoring run: the
// external tools must resolve and the log, state and output directories must
// be accessible.
package preflight
