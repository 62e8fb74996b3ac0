// Package layout models the menu canvas: a background image, one title and
// one button per chapter.
//
// Session owns the chapter set and keeps the button list in step with it.
// Document is the persisted JSON form; Save and Load round-trip every item
// property exactly and Load validates the payload (JSON schema, then field
// rules) before it touches a session.
package layout
