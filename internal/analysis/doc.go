// Package analysis inspects recorded runs.
//
//   - [Series]: one field of one ball across stored frames
//   - [BallPortrait]: trajectory or phase plane of a ball, rendered with
//     [PhasePortraitToASCII]
//   - [DominantPeriod]: strongest oscillation in a series, in ticks
//
// A ball bouncing between two walls shows up as a clear peak:
//
//	xs, _ := analysis.Series(frames, 0, analysis.FieldX)
//	period := analysis.DominantPeriod(xs, every)
package analysis
