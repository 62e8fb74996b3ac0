// Package pipeline coordinates one authoring run end to end.
//
// A run renders the menu still, encodes the menu loop and the feature video
// concurrently, multiplexes both into a disc image once the two encodes have
// succeeded, then waits for an explicit burn request:
//
//	idle -> rendering -> encoding -> authoring -> awaiting_burn -> burning -> done
//
// Any stage can move the run to failed. Done and failed (and awaiting_burn,
// when the user wants a fresh image) are re-armable: Author resets every
// per-run output path and starts over from idle.
//
// Job events arrive on worker goroutines. The Coordinator serializes them
// under its mutex so the join check and every state write are atomic, and
// forwards log lines and state changes to the Observer in the order they
// happened.
package pipeline
