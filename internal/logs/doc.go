// Package logs reads the bdmenu log file for `bdmenu logs`.
//
// Last returns the final lines with bounded memory and the byte offset where
// reading stopped; Follow polls from an offset and hands every new line to a
// callback until the context ends. A missing file reads as empty so the
// command works before the first run has logged anything.
package logs
