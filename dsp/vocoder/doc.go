// Package vocoder implements phase-vocoder time stretching and pitch
// shifting for whole buffers.
//
// [Stretcher] changes duration without changing pitch using STFT analysis
// at a rate-scaled hop, identity phase locking (Laroche & Dolson 1999) and
// weighted overlap-add at a fixed synthesis hop. [Shifter] changes pitch
// without changing duration by stretching and then resampling with 4-point
// Hermite interpolation.
//
// Both types hold only immutable configuration and a pool of scratch
// workspaces, so one value may serve concurrent calls.
package vocoder
