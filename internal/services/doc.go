// Package services holds the shared error taxonomy and context annotations
// used by the external collaborator clients and the pipeline stages.
package services
