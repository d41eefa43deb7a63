// Package source classifies a job's source reference and derives a stable
// identifier from it. Resolution is pure string work: no network access, and
// missing information degrades to sentinel values instead of errors.
package source
