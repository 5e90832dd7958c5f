// Package preflight validates the environment before organize and watch
// runs: directory permissions, the content sniffer, external binaries, and
// the watch session lock.
package preflight
