// Package testsupport provides helpers shared by package tests: a config
// builder rooted in t.TempDir, stub executables and placeholder media files.
package testsupport
