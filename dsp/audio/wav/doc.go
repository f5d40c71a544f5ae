// Package wav reads and writes mono RIFF/WAVE files for the voice effect
// command.
//
// Linear PCM is handled by github.com/go-audio/wav. G.711 µ-law and A-law
// files, used for telephone-band exports, are framed here and coded with
// github.com/zaf/g711. Multi-channel input is averaged down to mono.
package wav
