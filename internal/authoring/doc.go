// Package authoring writes the tsMuxeR configuration and runs the multiplexer
// that turns the menu and feature streams into a Blu-ray ISO image.
package authoring
