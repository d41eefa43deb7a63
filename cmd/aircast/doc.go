// Command aircast turns a recorded live audio conversation into a published
// multimedia article: encoded audio, a caption track, an attendee roster, and
// an engagement digest.
package main
