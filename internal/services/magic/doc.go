// Package magic shells out to file(1) for content-based type detection.
//
// The client performs the two lookups the classifier consumes, a terse MIME
// type and the verbose description, under a single bounded deadline so one
// unreadable file cannot stall a whole run. The Sniffer interface and the
// injectable Executor keep process execution out of classifier tests.
package magic
