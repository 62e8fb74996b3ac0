// Package burning writes a finished ISO image to optical media and lists the
// drives that can do it.
//
// Windows uses isoburn.exe and wmic; macOS uses drutil. Other platforms are
// rejected with a validation error before anything is launched.
package burning
