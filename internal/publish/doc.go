// Package publish assembles the optional-field asset bundle for a job and
// shapes it into a full registration or a scoped patch for the publishing
// collaborator.
package publish
