// Package rendition derives the per-tier output settings of the adaptive
// streaming ladder from a single source profile.
//
// The planner is pure arithmetic: each tier's target width is scaled against
// the source aspect ratio, the resulting height is snapped down to a multiple
// of four, and the H.264 codec profile is chosen from the planned frame size.
// Nothing in this package performs I/O, so callers can plan ladders freely
// for previews, dry runs, and the real job submission.
package rendition
