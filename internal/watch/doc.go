// Package watch keeps a directory organized by observing filesystem events
// and running organize passes once activity settles.
package watch
