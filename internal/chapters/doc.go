// Package chapters models the chapter cut points of a disc.
//
// A Set holds the explicit chapters a user added; the origin chapter 00:00:00
// is derived and always leads EffectiveOrder. Timestamp arithmetic for the
// authoring stage (seconds parsing, menu-duration offsets) lives here too.
package chapters
