// Package whisper calls the hosted speech-to-text service used as the
// transcription fallback when a capture yields no caption records.
package whisper
