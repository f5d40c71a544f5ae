// Package dynamics provides amplitude-shaping stages for the voice presets.
//
// Included processors:
//   - Compander: static soft-knee limiter applied per sample, without
//     attack or release ballistics.
package dynamics
