// Package classify decides which category a file belongs to.
//
// Decisions run content detection first (keywords in the file(1) description),
// then the extension table, and finally fall back to Others. The pipeline is
// total: every file gets exactly one category and sniffer failures never stop
// a run.
package classify
