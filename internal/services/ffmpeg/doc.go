// Package ffmpeg wraps the audio transcoder CLI. The named profiles trade
// fidelity for size; the profile choice is opaque to the rest of the
// pipeline.
package ffmpeg
