// Package logs reads back cubby's own log files for the logs command:
// bounded tail reads and polling follow streams.
package logs
