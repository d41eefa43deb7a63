// Package links extracts referenced links from rendered transcript markup,
// resolves display titles under a bounded time/count budget, and renders the
// engagement digest fragments.
package links
