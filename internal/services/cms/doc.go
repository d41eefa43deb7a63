// Package cms calls the publishing collaborator. Registration is an
// idempotent upsert of a full asset bundle against a post identifier; a patch
// is an idempotent partial update scoped to one asset category. Optional
// JSON fields are omitted entirely when empty so the collaborator can
// distinguish "omitted" from "explicitly empty".
package cms
