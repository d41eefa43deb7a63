// Package spacescrape wraps the live-capture crawler CLI. A capture yields a
// local audio file and, opportunistically, raw caption records and session
// metadata from the same call.
package spacescrape
