// Package roster maps raw session metadata into a deduplicated
// host/co-host/speaker roster and renders it as optional markup sections.
package roster
