// Package acquire obtains a local audio file for a job by trying acquisition
// strategies in fixed priority order, stopping at the first success. Caption
// and attendee metadata picked up along the way always originate from the
// same call as the audio.
package acquire
