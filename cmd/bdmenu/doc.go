// Package main hosts the bdmenu CLI entrypoint and command graph.
//
// The Cobra command tree drives an authoring session from the terminal: it
// edits the layout document (background, chapters, title and button
// properties), runs the authoring pipeline with streamed job output, burns
// finished images and reports tool readiness and run history.
//
// Keep this package lean: the pipeline, job and document logic lives in the
// internal packages; commands here parse flags, load configuration and
// render results.
package main
