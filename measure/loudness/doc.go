// Package loudness measures ITU-R BS.1770 gated loudness of mono buffers.
//
// The signal is K-weighted (a 4 dB high shelf at 1.5 kHz followed by a
// 38 Hz high-pass), cut into 400 ms blocks with 75% overlap, and gated at
// -70 LUFS absolute and -10 LU relative.
package loudness
