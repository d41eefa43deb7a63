// Package blobstore uploads run artifacts to the object-storage collaborator
// and reports their retrievable locations.
package blobstore
