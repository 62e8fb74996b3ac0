// Package notifications posts run milestones to ntfy.
//
// The author command publishes once a run settles: the disc image is ready,
// the burn finished, or the run failed. With no topic configured NewService
// returns a notifier that does nothing, so callers never branch on whether
// alerts are enabled.
package notifications
