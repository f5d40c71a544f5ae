// Package buffer pools the scratch slices that parallel stage branches mix
// through, so long chains do not allocate one slice per branch.
package buffer
