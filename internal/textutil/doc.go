// Package textutil holds display helpers shared by the CLI and the pipeline:
// human labels for snake_case identifiers and table cell truncation.
package textutil
