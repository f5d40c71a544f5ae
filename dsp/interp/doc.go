// Package interp provides the fractional-position interpolation used by the
// pitch shifter's resampling step.
//
//   - [Linear2]:  2-point linear interpolation
//   - [Hermite4]: 4-point cubic Hermite (default)
//   - [Resample]: reads a signal at a fixed fractional step with [Hermite4]
package interp
