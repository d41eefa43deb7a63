// Package captions normalizes heterogeneous caption records into canonical
// time-ordered cues and renders them as a WebVTT document and an annotated
// transcript markup fragment.
package captions
